// Package controller holds the application state machine that sits between
// the terminal UI and the services.
package controller

import (
	"errors"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
)

type State string

const (
	StateUnauthenticated     State = "unauthenticated"
	StatePendingVerification State = "pending-verification"
	StateNeedsConsent        State = "needs-consent"
	StateNeedsQuiz           State = "needs-quiz"
	StateDashboard           State = "dashboard"
	StateReadingDetail       State = "reading-detail"
	StateComposingReading    State = "composing-reading"
)

// SignedIn reports whether a session is active in s.
func (s State) SignedIn() bool {
	switch s {
	case StateNeedsConsent, StateNeedsQuiz, StateDashboard, StateReadingDetail, StateComposingReading:
		return true
	}
	return false
}

var (
	ErrWrongState     = errors.New("operation not available in current state")
	ErrReadingUnknown = errors.New("reading not found")
	ErrBusy           = errors.New("a reading is already in progress")
	ErrResendCooldown = errors.New("verification code resent too recently")
)

// View is a snapshot of everything the UI renders. It shares no memory with
// the controller.
type View struct {
	State        State
	User         *models.Profile
	Readings     []models.Reading
	Moods        []models.Mood
	Current      *models.Reading
	PendingEmail string
	Error        string
	Busy         bool
	MoodToday    bool
}
