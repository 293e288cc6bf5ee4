package controller

import (
	"errors"

	"github.com/dmitrijs2005/psychicstar/internal/client/mailer"
	"github.com/dmitrijs2005/psychicstar/internal/client/quiz"
	"github.com/dmitrijs2005/psychicstar/internal/client/services"
	"github.com/dmitrijs2005/psychicstar/internal/common"
)

const (
	MsgAccountExists      = "An account with this astral signature already exists."
	MsgDispatchFailed     = "Failed to send verification email. Try again."
	MsgInvalidCredentials = "Invalid credentials. The Collective does not recognize this combination."
	MsgVerifyFirst        = "Please verify your email first."
	MsgInvalidCode        = "Invalid or expired verification code. Please try again."
	MsgUnexpected         = "An unexpected disturbance occurred. Please try again."
	MsgReadingFailed      = "We encountered a blockage in the ether. Please rephrase your inquiry."
	MsgInvalidInput       = "Please enter a valid email address and password."
	MsgBlankQuery         = "Share what is on your mind before consulting the Collective."
	MsgQuizIncomplete     = "Please answer every question on a scale from 1 to 7."
	MsgMoodOutOfRange     = "Mood must be a number from 1 to 5."
	MsgMoodAlreadyLogged  = "You have already logged your mood today."
	MsgUnavailable        = "That action is not available right now."
	MsgReadingUnknown     = "That reading is not in your history."
	MsgBusy               = "The Collective is still contemplating your last inquiry."
	MsgResendCooldown     = "Please wait a minute before requesting another code."
	MsgNameTooLong        = "Your name may be at most 64 characters."
)

// Error carries the user-facing message of a failed operation. The
// underlying cause is kept for errors.Is and logging only.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

func messageFor(err error) string {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return MsgAccountExists
	case errors.Is(err, services.ErrNameTooLong):
		return MsgNameTooLong
	case errors.Is(err, common.ErrorValidation):
		return MsgInvalidInput
	case errors.Is(err, mailer.ErrDispatchFailed):
		return MsgDispatchFailed
	case errors.Is(err, services.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, services.ErrUnverified):
		return MsgVerifyFirst
	case errors.Is(err, services.ErrInvalidCode):
		return MsgInvalidCode
	case errors.Is(err, services.ErrBlankQuery):
		return MsgBlankQuery
	case errors.Is(err, services.ErrReadingFailed):
		return MsgReadingFailed
	case errors.Is(err, quiz.ErrIncomplete), errors.Is(err, quiz.ErrAnswerOutOfRange):
		return MsgQuizIncomplete
	case errors.Is(err, services.ErrMoodOutOfRange):
		return MsgMoodOutOfRange
	case errors.Is(err, services.ErrMoodAlreadyLogged):
		return MsgMoodAlreadyLogged
	case errors.Is(err, ErrWrongState):
		return MsgUnavailable
	case errors.Is(err, ErrReadingUnknown):
		return MsgReadingUnknown
	case errors.Is(err, ErrBusy):
		return MsgBusy
	case errors.Is(err, ErrResendCooldown):
		return MsgResendCooldown
	default:
		return MsgUnexpected
	}
}
