// Package services contains the application services of the client: the
// verification ledger, authentication, account updates and readings.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/verifications"
	"github.com/dmitrijs2005/psychicstar/internal/common"
)

const (
	// CodeLength is the number of digits of a verification code.
	CodeLength = 6
	// MaxAttempts is the number of wrong submissions that purge a code.
	MaxAttempts = 3
)

// VerificationLedger issues and checks one pending code per email.
//
// Contract:
//   - Issue: store a fresh code with zero attempts, replacing any pending one.
//   - Check: true and purge on exact match; on mismatch count the attempt and
//     purge once MaxAttempts is reached; false when nothing is pending.
//   - Revoke: drop the pending code.
//
// Codes do not expire with time.
type VerificationLedger interface {
	Issue(ctx context.Context, email string) (string, error)
	Check(ctx context.Context, email, code string) (bool, error)
	Revoke(ctx context.Context, email string) error
}

type ledger struct {
	mu   sync.Mutex
	repo verifications.Repository
	now  func() time.Time
	code func() (string, error)
}

func NewVerificationLedger(repo verifications.Repository) VerificationLedger {
	return &ledger{
		repo: repo,
		now:  time.Now,
		code: func() (string, error) { return common.RandomDigits(CodeLength) },
	}
}

func (l *ledger) Issue(ctx context.Context, email string) (string, error) {
	email = common.NormalizeEmail(email)

	code, err := l.code()
	if err != nil {
		return "", fmt.Errorf("code generation error: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := models.VerificationEntry{Code: code, Timestamp: l.now().UnixMilli()}
	if err := l.repo.Put(ctx, email, entry); err != nil {
		return "", err
	}
	return code, nil
}

func (l *ledger) Check(ctx context.Context, email, code string) (bool, error) {
	email = common.NormalizeEmail(email)

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, err := l.repo.Get(ctx, email)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, nil
	}

	if entry.Code == code {
		return true, l.repo.Delete(ctx, email)
	}

	entry.Attempts++
	if entry.Attempts >= MaxAttempts {
		return false, l.repo.Delete(ctx, email)
	}
	return false, l.repo.Put(ctx, email, *entry)
}

func (l *ledger) Revoke(ctx context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.repo.Delete(ctx, common.NormalizeEmail(email))
}
