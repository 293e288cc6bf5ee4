// Package models defines the records persisted by the client stores.
//
// JSON tags follow the layout of the stored blobs so existing data stays
// readable.
package models

import (
	"slices"
	"time"
)

// BigFiveProfile holds normalized trait scores in 0..100.
type BigFiveProfile struct {
	Extraversion      int  `json:"extraversion"`
	Agreeableness     int  `json:"agreeableness"`
	Conscientiousness int  `json:"conscientiousness"`
	Neuroticism       int  `json:"neuroticism"`
	Openness          int  `json:"openness"`
	IsComplete        bool `json:"isComplete,omitempty"`
}

// Profile is the user-visible part of an account.
type Profile struct {
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Verified     bool            `json:"verified"`
	QuizResults  *BigFiveProfile `json:"quizResults"`
	HasConsented bool            `json:"hasConsented"`
}

// Completed reports whether the personality quiz has been scored.
func (p Profile) Completed() bool {
	return p.QuizResults != nil
}

// Account is one entry of the user store, keyed by normalized email.
type Account struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Profile      Profile   `json:"profile"`
	Readings     []Reading `json:"readings"`
	Moods        []Mood    `json:"moods"`
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Profile.QuizResults != nil {
		q := *a.Profile.QuizResults
		c.Profile.QuizResults = &q
	}
	c.Readings = make([]Reading, len(a.Readings))
	for i, r := range a.Readings {
		c.Readings[i] = r.Clone()
	}
	c.Moods = slices.Clone(a.Moods)
	if c.Moods == nil {
		c.Moods = []Mood{}
	}
	return &c
}

// Mood is one self-reported mood sample. Timestamp is in Unix milliseconds.
type Mood struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Value     int    `json:"value"`
}

func (m Mood) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// VerificationEntry is a pending email verification code.
type VerificationEntry struct {
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
	Attempts  int    `json:"attempts"`
}
