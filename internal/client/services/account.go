package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/quiz"
	"github.com/dmitrijs2005/psychicstar/internal/client/repositories/users"
)

// Mood scale bounds.
const (
	MinMood = 1
	MaxMood = 5
)

// AccountService applies profile changes of a signed-in account. Every
// method writes through to the user store and returns the stored result.
type AccountService interface {
	Load(ctx context.Context, email string) (*models.Account, error)
	Consent(ctx context.Context, email string) (*models.Profile, error)
	CompleteQuiz(ctx context.Context, email string, answers map[int]int) (*models.Profile, error)
	LogMood(ctx context.Context, email string, value int) (*models.Mood, error)
}

type accountService struct {
	users    users.Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewAccountService(u users.Repository) AccountService {
	return &accountService{
		users:    u,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *accountService) Load(ctx context.Context, email string) (*models.Account, error) {
	return s.users.Get(ctx, email)
}

func (s *accountService) updateProfile(ctx context.Context, email string, fn func(p *models.Profile)) (*models.Profile, error) {
	var out models.Profile
	err := s.users.Mutate(ctx, email, func(a *models.Account) error {
		fn(&a.Profile)
		out = a.Profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *accountService) Consent(ctx context.Context, email string) (*models.Profile, error) {
	return s.updateProfile(ctx, email, func(p *models.Profile) {
		p.HasConsented = true
	})
}

func (s *accountService) CompleteQuiz(ctx context.Context, email string, answers map[int]int) (*models.Profile, error) {
	scores, err := quiz.Score(answers)
	if err != nil {
		return nil, err
	}
	return s.updateProfile(ctx, email, func(p *models.Profile) {
		p.QuizResults = scores
	})
}

// HasLoggedMoodToday reports whether any mood was logged since local midnight.
func HasLoggedMoodToday(moods []models.Mood, now time.Time) bool {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli()
	for _, mood := range moods {
		if mood.Timestamp >= start {
			return true
		}
	}
	return false
}

func (s *accountService) LogMood(ctx context.Context, email string, value int) (*models.Mood, error) {
	if err := s.validate.Var(value, fmt.Sprintf("min=%d,max=%d", MinMood, MaxMood)); err != nil {
		return nil, fmt.Errorf("%w: %d", ErrMoodOutOfRange, value)
	}

	now := s.now()
	mood := models.Mood{ID: uuid.NewString(), Timestamp: now.UnixMilli(), Value: value}

	err := s.users.Mutate(ctx, email, func(a *models.Account) error {
		if HasLoggedMoodToday(a.Moods, now) {
			return ErrMoodAlreadyLogged
		}
		a.Moods = append(a.Moods, mood)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &mood, nil
}
