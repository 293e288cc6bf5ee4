package users

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/psychicstar/internal/common"
	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

// StorageKey holds the JSON object {email: account}.
const StorageKey = "psychelens_users_db_v1"

// BlobRepository keeps every account in one JSON blob and rewrites the whole
// blob on each mutation. Writers in this process are serialized; other
// processes sharing the same storage are not coordinated with and the last
// writer wins.
type BlobRepository struct {
	mu    sync.Mutex
	store metadata.Repository
	log   logging.Logger
}

func NewBlobRepository(store metadata.Repository, log logging.Logger) *BlobRepository {
	return &BlobRepository{store: store, log: log}
}

// load reads the blob. A missing or undecodable blob is an empty store.
func (r *BlobRepository) load(ctx context.Context) (map[string]*models.Account, error) {
	raw, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}

	db := make(map[string]*models.Account)
	if len(raw) == 0 {
		return db, nil
	}

	if err := json.Unmarshal(raw, &db); err != nil {
		r.log.Warn(ctx, "user store is corrupt, treating as empty", "error", err)
		return make(map[string]*models.Account), nil
	}

	for k, a := range db {
		if a == nil {
			delete(db, k)
		}
	}
	return db, nil
}

func (r *BlobRepository) save(ctx context.Context, db map[string]*models.Account) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}
	if err := r.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	return nil
}

func (r *BlobRepository) Create(ctx context.Context, a *models.Account) error {
	email := common.NormalizeEmail(a.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load(ctx)
	if err != nil {
		return err
	}

	if _, ok := db[email]; ok {
		return fmt.Errorf("account %s: %w", email, common.ErrorAlreadyExists)
	}

	c := a.Clone()
	c.Email = email
	c.Profile.Email = email
	if c.Readings == nil {
		c.Readings = []models.Reading{}
	}
	db[email] = c

	return r.save(ctx, db)
}

func (r *BlobRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	email = common.NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	a, ok := db[email]
	if !ok {
		return nil, nil
	}
	return a.Clone(), nil
}

func (r *BlobRepository) Mutate(ctx context.Context, email string, fn func(a *models.Account) error) error {
	email = common.NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load(ctx)
	if err != nil {
		return err
	}

	a, ok := db[email]
	if !ok {
		return fmt.Errorf("account %s: %w", email, common.ErrorNotFound)
	}

	c := a.Clone()
	if err := fn(c); err != nil {
		return err
	}
	// The key is not editable.
	c.Email = email
	c.Profile.Email = email
	db[email] = c

	return r.save(ctx, db)
}

func (r *BlobRepository) UpdateProfile(ctx context.Context, email string, p models.Profile) error {
	return r.Mutate(ctx, email, func(a *models.Account) error {
		a.Profile = p
		if p.QuizResults != nil {
			q := *p.QuizResults
			a.Profile.QuizResults = &q
		}
		return nil
	})
}

func (r *BlobRepository) AppendReading(ctx context.Context, email string, reading models.Reading) error {
	return r.Mutate(ctx, email, func(a *models.Account) error {
		a.Readings = append(a.Readings, reading.Clone())
		return nil
	})
}

func (r *BlobRepository) AppendMood(ctx context.Context, email string, m models.Mood) error {
	return r.Mutate(ctx, email, func(a *models.Account) error {
		a.Moods = append(a.Moods, m)
		return nil
	})
}
