// Package verifications persists pending email verification codes.
package verifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

// StorageKey holds the JSON object {email: entry}.
const StorageKey = "verification_codes"

type Repository interface {
	// Get returns (nil, nil) when no code is pending for email.
	Get(ctx context.Context, email string) (*models.VerificationEntry, error)
	Put(ctx context.Context, email string, e models.VerificationEntry) error
	Delete(ctx context.Context, email string) error
}

type BlobRepository struct {
	mu    sync.Mutex
	store metadata.Repository
	log   logging.Logger
}

func NewBlobRepository(store metadata.Repository, log logging.Logger) *BlobRepository {
	return &BlobRepository{store: store, log: log}
}

func (r *BlobRepository) load(ctx context.Context) (map[string]models.VerificationEntry, error) {
	raw, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification codes: %w", err)
	}

	codes := make(map[string]models.VerificationEntry)
	if len(raw) == 0 {
		return codes, nil
	}
	if err := json.Unmarshal(raw, &codes); err != nil {
		r.log.Warn(ctx, "verification codes are corrupt, treating as empty", "error", err)
		return make(map[string]models.VerificationEntry), nil
	}
	return codes, nil
}

func (r *BlobRepository) save(ctx context.Context, codes map[string]models.VerificationEntry) error {
	raw, err := json.Marshal(codes)
	if err != nil {
		return fmt.Errorf("failed to encode verification codes: %w", err)
	}
	if err := r.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to write verification codes: %w", err)
	}
	return nil
}

func (r *BlobRepository) Get(ctx context.Context, email string) (*models.VerificationEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := codes[email]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *BlobRepository) Put(ctx context.Context, email string, e models.VerificationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.load(ctx)
	if err != nil {
		return err
	}
	codes[email] = e
	return r.save(ctx, codes)
}

func (r *BlobRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := codes[email]; !ok {
		return nil
	}
	delete(codes, email)
	return r.save(ctx, codes)
}
