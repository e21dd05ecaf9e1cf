// Package repository defines the persistence boundary for user records.
package repository

import (
	"context"
	"errors"

	"github.com/andreihelo/simple-login-api/internal/domain"
)

var (
	// ErrNotFound indicates no record matched the lookup.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateUsername indicates an insert or update violated the
	// username unique constraint.
	ErrDuplicateUsername = errors.New("repository: duplicate username")
)

// UserRepository is the store adapter for user records. Every operation is
// a single statement against the backing store, so uniqueness enforcement
// and token writes stay atomic under concurrent callers.
type UserRepository interface {
	// Insert persists a new record and returns it with the store-assigned
	// id. A username collision yields ErrDuplicateUsername.
	Insert(ctx context.Context, user domain.User) (domain.User, error)

	// FindByToken returns the single record holding token, or ErrNotFound.
	FindByToken(ctx context.Context, token string) (domain.User, error)

	// FindByCredentials returns the record whose username and password both
	// match exactly, or ErrNotFound.
	FindByCredentials(ctx context.Context, username, password string) (domain.User, error)

	// Update rewrites the profile fields of the record identified by
	// user.ID and returns the stored result. The username is immutable
	// through this path.
	Update(ctx context.Context, user domain.User) (domain.User, error)

	// SetToken stores token (or nil) on the record identified by id.
	SetToken(ctx context.Context, id int64, token *string) (domain.User, error)

	// ClearToken nulls out token wherever it is currently held. A token
	// that resolves to no record yields ErrNotFound.
	ClearToken(ctx context.Context, token string) error

	// DeleteByToken permanently removes the record holding token, or
	// returns ErrNotFound.
	DeleteByToken(ctx context.Context, token string) error
}
