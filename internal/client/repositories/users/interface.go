// Package users is the durable, email-keyed store of account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
)

// Repository stores accounts keyed by normalized email. Get hands out copies;
// changes only reach the store through the mutating methods.
type Repository interface {
	// Create fails with common.ErrorAlreadyExists when the email is taken.
	Create(ctx context.Context, a *models.Account) error
	// Get returns (nil, nil) when no account exists.
	Get(ctx context.Context, email string) (*models.Account, error)
	// Mutate applies fn to a copy of the account and writes it back.
	// Fails with common.ErrorNotFound when no account exists.
	Mutate(ctx context.Context, email string, fn func(a *models.Account) error) error

	UpdateProfile(ctx context.Context, email string, p models.Profile) error
	AppendReading(ctx context.Context, email string, r models.Reading) error
	AppendMood(ctx context.Context, email string, m models.Mood) error
}
