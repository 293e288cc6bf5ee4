package services

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnverified         = errors.New("email not verified")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrNameTooLong        = errors.New("name is too long")

	ErrBlankQuery        = errors.New("inquiry is blank")
	ErrReadingFailed     = errors.New("reading generation failed")
	ErrMoodOutOfRange    = errors.New("mood value out of range")
	ErrMoodAlreadyLogged = errors.New("mood already logged today")
)
