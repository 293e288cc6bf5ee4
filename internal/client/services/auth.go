package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/psychicstar/internal/client/mailer"
	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/users"
	"github.com/dmitrijs2005/psychicstar/internal/common"
	"github.com/dmitrijs2005/psychicstar/internal/cryptox"
	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

// AuthService defines the account lifecycle operations.
//
// Contract:
//   - Signup: create an unverified account and dispatch a code. No account is
//     created when dispatch fails.
//   - Login: ErrInvalidCredentials for unknown email or wrong password alike;
//     ErrUnverified (after re-issuing a code) for unverified accounts.
//   - Verify: consume a code and mark the account verified.
//   - Resend: issue and dispatch a fresh code.
type AuthService interface {
	Signup(ctx context.Context, email string, password []byte, name string) (*models.Account, error)
	Login(ctx context.Context, email string, password []byte) (*models.Account, error)
	Verify(ctx context.Context, email, code string) (*models.Account, error)
	Resend(ctx context.Context, email string) error
}

type signupInput struct {
	Email    string `validate:"required,email,max=254"`
	Password []byte `validate:"required,min=1"`
	Name     string `validate:"max=64"`
}

type authService struct {
	users    users.Repository
	ledger   VerificationLedger
	mail     mailer.Dispatcher
	hasher   cryptox.Hasher
	validate *validator.Validate
	log      logging.Logger
	delay    time.Duration
}

// NewAuthService wires the auth flow. delay is waited before every
// credential check.
func NewAuthService(u users.Repository, l VerificationLedger, m mailer.Dispatcher, h cryptox.Hasher, log logging.Logger, delay time.Duration) AuthService {
	return &authService{
		users:    u,
		ledger:   l,
		mail:     m,
		hasher:   h,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		delay:    delay,
	}
}

func (s *authService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Field() == "Name" {
			return fmt.Errorf("%w: %w", ErrNameTooLong, common.ErrorValidation)
		}
		return fmt.Errorf("%w: %s failed on %s", common.ErrorValidation, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %w", common.ErrorValidation, err)
}

// dispatch issues a code for email and sends it. An undelivered code is
// revoked.
func (s *authService) dispatch(ctx context.Context, email string) error {
	code, err := s.ledger.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("issue code error: %w", err)
	}

	if err := s.mail.Send(ctx, email, code); err != nil {
		if rerr := s.ledger.Revoke(ctx, email); rerr != nil {
			s.log.Error(ctx, "revoke undelivered code failed", "email", email, "error", rerr)
		}
		if !errors.Is(err, mailer.ErrDispatchFailed) {
			err = fmt.Errorf("%w: %w", mailer.ErrDispatchFailed, err)
		}
		return err
	}
	return nil
}

func (s *authService) Signup(ctx context.Context, email string, password []byte, name string) (*models.Account, error) {
	email = common.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := s.validate.Struct(signupInput{Email: email, Password: password, Name: name}); err != nil {
		return nil, validationError(err)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	existing, err := s.users.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("account %s: %w", email, common.ErrorAlreadyExists)
	}

	if err := s.dispatch(ctx, email); err != nil {
		return nil, err
	}

	if name == "" {
		name = common.DefaultUserName
	}
	acc := &models.Account{
		Email:        email,
		PasswordHash: s.hasher.Hash(password),
		Profile:      models.Profile{Email: email, Name: name},
		Readings:     []models.Reading{},
		Moods:        []models.Mood{},
	}

	if err := s.users.Create(ctx, acc); err != nil {
		if rerr := s.ledger.Revoke(ctx, email); rerr != nil {
			s.log.Error(ctx, "revoke code failed", "email", email, "error", rerr)
		}
		return nil, err
	}

	s.log.Info(ctx, "account created", "email", email)
	return acc.Clone(), nil
}

func (s *authService) Login(ctx context.Context, email string, password []byte) (*models.Account, error) {
	email = common.NormalizeEmail(email)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	acc, err := s.users.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil || !cryptox.Matches(s.hasher, acc.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !acc.Profile.Verified {
		if err := s.dispatch(ctx, email); err != nil {
			s.log.Warn(ctx, "re-issue verification code failed", "email", email, "error", err)
		}
		return nil, ErrUnverified
	}

	return acc, nil
}

func (s *authService) Verify(ctx context.Context, email, code string) (*models.Account, error) {
	email = common.NormalizeEmail(email)
	code = strings.TrimSpace(code)

	ok, err := s.ledger.Check(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCode
	}

	err = s.users.Mutate(ctx, email, func(a *models.Account) error {
		a.Profile.Verified = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.users.Get(ctx, email)
}

func (s *authService) Resend(ctx context.Context, email string) error {
	return s.dispatch(ctx, common.NormalizeEmail(email))
}
