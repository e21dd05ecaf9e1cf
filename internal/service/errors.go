package service

import (
	"errors"

	"github.com/andreihelo/simple-login-api/internal/validation"
)

var (
	// ErrNotFound means the supplied token resolves to no user. Callers get
	// the same answer for a token that never existed and one cleared by
	// signout or delete.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers every signin mismatch without revealing
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries the full violation mapping for a rejected write.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newUsernameTakenError() *ValidationError {
	return &ValidationError{Fields: validation.Violations{
		validation.FieldUsername: {validation.MsgUsernameTaken},
	}}
}
