package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/psychicstar/internal/client/generator"
	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/users"
)

// ReadingService generates readings and files them in the user's history.
// Generate and Save are separate so a caller can drop a result that arrives
// after the session it was requested for has ended.
type ReadingService interface {
	Generate(ctx context.Context, query string, profile *models.BigFiveProfile) (*models.Reading, error)
	Save(ctx context.Context, email string, r models.Reading) error
}

type readingService struct {
	users users.Repository
	gen   generator.Generator
	now   func() time.Time
}

func NewReadingService(u users.Repository, g generator.Generator) ReadingService {
	return &readingService{users: u, gen: g, now: time.Now}
}

func (s *readingService) Generate(ctx context.Context, query string, profile *models.BigFiveProfile) (*models.Reading, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrBlankQuery
	}

	res, err := s.gen.Generate(ctx, query, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingFailed, err)
	}

	return &models.Reading{
		ReadingResult: *res,
		ID:            uuid.NewString(),
		Query:         query,
		Timestamp:     s.now().UnixMilli(),
	}, nil
}

func (s *readingService) Save(ctx context.Context, email string, r models.Reading) error {
	return s.users.AppendReading(ctx, email, r)
}
