package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
)

var fixedReading = models.ReadingResult{
	EnergeticOverview: models.EnergeticOverview{
		Symbolic:    "The Crossroads of Integration - Where shadow meets light",
		Translation: "You stand at a pivotal moment where past patterns intersect with future possibilities. Your journey invites wholeness.",
	},
	CoreTraits: []models.Trait{
		{Trait: "Introspective", Confidence: 88, Description: "Deep self-awareness and tendency for reflection"},
		{Trait: "Resilient", Confidence: 82, Description: "Capacity to bounce back from adversity"},
		{Trait: "Conscientious", Confidence: 79, Description: "Detail-oriented and value-driven approach"},
	},
	DominantArchetypes: []models.Archetype{
		{
			Name:                 "The Seeker",
			Description:          "One who pursues truth and meaning with dedication",
			BehavioralIndicators: []string{"Asks deep questions", "Seeks understanding", "Values growth"},
		},
		{
			Name:                 "The Sage",
			Description:          "The wisdom keeper within you",
			BehavioralIndicators: []string{"Analytical thinking", "Pattern recognition", "Knowledge pursuit"},
		},
	},
	ActionPlan: models.ActionPlan{
		ShortTerm:  "Create a daily reflection practice. Spend 10 minutes journaling about your insights and emotions.",
		MediumTerm: "Develop deeper connections with like-minded seekers. Share your journey and learn from others' paths.",
		LongTerm:   "Integrate your learnings into a coherent life philosophy that guides your decisions and relationships.",
	},
	RedFlags: []string{
		"Overthinking can become paralysis - balance analysis with action",
		"Perfectionism may block your progress - embrace 'good enough'",
		"Isolation during reflection - ensure you maintain meaningful connections",
	},
	FutureProjection: models.FutureProjection{
		PathA: models.Path{
			PathName:    "Path of Integration",
			Description: "By embracing your insights and taking consistent action, you'll experience profound personal growth and authentic relationships.",
			Probability: "68%",
		},
		PathB: models.Path{
			PathName:    "Path of Stagnation",
			Description: "Without active engagement with your insights, patterns may repeat and opportunities for growth will diminish.",
			Probability: "32%",
		},
	},
	ClosingWisdom: "Remember: transformation begins with awareness, continues through action, and crystallizes through community. The Collective sees your potential.",
}

// Mock returns the same reading for every inquiry after Latency.
type Mock struct {
	Latency time.Duration
}

func NewMock(latency time.Duration) *Mock {
	return &Mock{Latency: latency}
}

func (m *Mock) Generate(ctx context.Context, _ string, _ *models.BigFiveProfile) (*models.ReadingResult, error) {
	if m.Latency > 0 {
		t := time.NewTimer(m.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, ctx.Err())
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	r := fixedReading.Clone()
	return &r, nil
}
