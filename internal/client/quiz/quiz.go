// Package quiz scores the ten-item Big Five inventory.
package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
)

type Trait string

const (
	Extraversion      Trait = "extraversion"
	Agreeableness     Trait = "agreeableness"
	Conscientiousness Trait = "conscientiousness"
	Neuroticism       Trait = "neuroticism"
	Openness          Trait = "openness"
)

// Answer bounds of the 7-point scale.
const (
	MinAnswer = 1
	MaxAnswer = 7
)

var (
	ErrIncomplete       = errors.New("quiz is incomplete")
	ErrAnswerOutOfRange = errors.New("answer out of range")
)

type Item struct {
	ID      int
	Text    string
	Trait   Trait
	Reverse bool
}

// Items is the inventory in presentation order. Every trait has two items.
var Items = []Item{
	{1, "I see myself as extraverted, enthusiastic.", Extraversion, false},
	{2, "I see myself as critical, quarrelsome.", Agreeableness, true},
	{3, "I see myself as dependable, self-disciplined.", Conscientiousness, false},
	{4, "I see myself as anxious, easily upset.", Neuroticism, false},
	{5, "I see myself as open to new experiences, complex.", Openness, false},
	{6, "I see myself as reserved, quiet.", Extraversion, true},
	{7, "I see myself as sympathetic, warm.", Agreeableness, false},
	{8, "I see myself as disorganized, careless.", Conscientiousness, true},
	{9, "I see myself as calm, emotionally stable.", Neuroticism, true},
	{10, "I see myself as conventional, uncreative.", Openness, true},
}

// normalize maps a two-item sum in 2..14 to 0..100.
func normalize(sum int) int {
	return int(math.Round(float64(sum-2) / 12 * 100))
}

// Score turns raw answers keyed by item ID into a profile. Reverse-keyed
// items are scored as 8 - raw.
func Score(answers map[int]int) (*models.BigFiveProfile, error) {
	sums := make(map[Trait]int, 5)

	for _, it := range Items {
		raw, ok := answers[it.ID]
		if !ok {
			return nil, fmt.Errorf("item %d: %w", it.ID, ErrIncomplete)
		}
		if raw < MinAnswer || raw > MaxAnswer {
			return nil, fmt.Errorf("item %d = %d: %w", it.ID, raw, ErrAnswerOutOfRange)
		}
		if it.Reverse {
			raw = MaxAnswer + 1 - raw
		}
		sums[it.Trait] += raw
	}

	return &models.BigFiveProfile{
		Extraversion:      normalize(sums[Extraversion]),
		Agreeableness:     normalize(sums[Agreeableness]),
		Conscientiousness: normalize(sums[Conscientiousness]),
		Neuroticism:       normalize(sums[Neuroticism]),
		Openness:          normalize(sums[Openness]),
		IsComplete:        true,
	}, nil
}

// Traits lists the five traits in profile order.
var Traits = []Trait{Extraversion, Agreeableness, Conscientiousness, Neuroticism, Openness}

// Value returns the score of tr in p.
func Value(p *models.BigFiveProfile, tr Trait) int {
	switch tr {
	case Extraversion:
		return p.Extraversion
	case Agreeableness:
		return p.Agreeableness
	case Conscientiousness:
		return p.Conscientiousness
	case Neuroticism:
		return p.Neuroticism
	case Openness:
		return p.Openness
	}
	return 0
}

// DominantTrait returns the highest scoring trait of p. Ties go to the
// trait listed first in Traits. It returns "" for a nil profile.
func DominantTrait(p *models.BigFiveProfile) Trait {
	if p == nil {
		return ""
	}
	best := Traits[0]
	for _, tr := range Traits[1:] {
		if Value(p, tr) > Value(p, best) {
			best = tr
		}
	}
	return best
}
