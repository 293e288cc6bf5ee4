// Package session stores the pointer to the account that is signed in.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/metadata"
)

// StorageKey holds the raw email of the signed-in account.
const StorageKey = "psychelens_session_v1"

type Repository interface {
	Begin(ctx context.Context, email string) error
	// Current reports the stored email, ok is false when there is none.
	Current(ctx context.Context) (email string, ok bool, err error)
	End(ctx context.Context) error
}

type MetadataRepository struct {
	store metadata.Repository
}

func NewMetadataRepository(store metadata.Repository) *MetadataRepository {
	return &MetadataRepository{store: store}
}

func (r *MetadataRepository) Begin(ctx context.Context, email string) error {
	if err := r.store.Set(ctx, StorageKey, []byte(email)); err != nil {
		return fmt.Errorf("failed to begin session: %w", err)
	}
	return nil
}

func (r *MetadataRepository) Current(ctx context.Context) (string, bool, error) {
	v, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

func (r *MetadataRepository) End(ctx context.Context) error {
	if err := r.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}
