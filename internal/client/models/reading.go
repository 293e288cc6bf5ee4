package models

import (
	"slices"
	"time"
)

type EnergeticOverview struct {
	Symbolic    string `json:"symbolic"`
	Translation string `json:"translation"`
}

type Trait struct {
	Trait       string `json:"trait"`
	Confidence  int    `json:"confidence"`
	Description string `json:"description"`
}

type Archetype struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	BehavioralIndicators []string `json:"behavioralIndicators"`
}

type ActionPlan struct {
	ShortTerm  string `json:"shortTerm"`
	MediumTerm string `json:"mediumTerm"`
	LongTerm   string `json:"longTerm"`
}

type Path struct {
	PathName    string `json:"pathName"`
	Description string `json:"description"`
	Probability string `json:"probability"`
}

type FutureProjection struct {
	PathA Path `json:"pathA"`
	PathB Path `json:"pathB"`
}

// ReadingResult is the structured output of a reading generator.
type ReadingResult struct {
	EnergeticOverview  EnergeticOverview `json:"energeticOverview"`
	CoreTraits         []Trait           `json:"coreTraits"`
	DominantArchetypes []Archetype       `json:"dominantArchetypes"`
	ActionPlan         ActionPlan        `json:"actionPlan"`
	RedFlags           []string          `json:"redFlags"`
	FutureProjection   FutureProjection  `json:"futureProjection"`
	ClosingWisdom      string            `json:"closingWisdom"`
}

func (r ReadingResult) Clone() ReadingResult {
	c := r
	c.CoreTraits = slices.Clone(r.CoreTraits)
	c.RedFlags = slices.Clone(r.RedFlags)
	c.DominantArchetypes = make([]Archetype, len(r.DominantArchetypes))
	for i, a := range r.DominantArchetypes {
		a.BehavioralIndicators = slices.Clone(a.BehavioralIndicators)
		c.DominantArchetypes[i] = a
	}
	return c
}

// Reading is a generated result stored in the user's history.
// Timestamp is in Unix milliseconds.
type Reading struct {
	ReadingResult
	ID        string `json:"id"`
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}

func (r Reading) Clone() Reading {
	r.ReadingResult = r.ReadingResult.Clone()
	return r
}

func (r Reading) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}
