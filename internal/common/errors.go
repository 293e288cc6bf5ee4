// Package common defines shared sentinel errors and small helpers used
// across the client layers. Callers should use errors.Is to match errors.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorValidation = errors.New("validation error")
)
