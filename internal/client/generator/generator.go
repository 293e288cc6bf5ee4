// Package generator produces readings from a free-text inquiry and the
// user's personality profile.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
)

const (
	KindMock   = "mock"
	KindGemini = "gemini"
)

var ErrGenerationFailed = errors.New("reading generation failed")

// Generator is a reading strategy. profile may be nil.
type Generator interface {
	Generate(ctx context.Context, query string, profile *models.BigFiveProfile) (*models.ReadingResult, error)
}

// Validate checks that r carries the fields a reading is rendered from.
func Validate(r *models.ReadingResult) error {
	switch {
	case r == nil:
		return errors.New("empty reading")
	case r.EnergeticOverview.Symbolic == "":
		return errors.New("missing energetic overview")
	case len(r.CoreTraits) == 0:
		return errors.New("missing core traits")
	case len(r.DominantArchetypes) == 0:
		return errors.New("missing archetypes")
	case r.ClosingWisdom == "":
		return errors.New("missing closing wisdom")
	}
	for i, t := range r.CoreTraits {
		if t.Confidence < 0 || t.Confidence > 100 {
			return fmt.Errorf("trait %d: confidence %d out of range", i, t.Confidence)
		}
	}
	return nil
}
