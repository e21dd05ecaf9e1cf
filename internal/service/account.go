// Package service holds the account lifecycle logic: signup, signin,
// profile fetch/update, signout, and delete.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andreihelo/simple-login-api/internal/config"
	"github.com/andreihelo/simple-login-api/internal/domain"
	"github.com/andreihelo/simple-login-api/internal/repository"
	"github.com/andreihelo/simple-login-api/internal/validation"
)

// SignUpInput is the field-set accepted on signup. Unknown inbound fields
// never reach this type; the handler binds only these.
type SignUpInput struct {
	Username             string
	FirstName            string
	LastName             string
	Password             string
	PasswordConfirmation string
}

// UpdateInput is the field-set accepted on profile update. Nil pointers
// mean "leave unchanged".
type UpdateInput struct {
	FirstName            *string
	LastName             *string
	Password             *string
	PasswordConfirmation *string
}

// AccountService orchestrates user state transitions against the store.
type AccountService struct {
	users  repository.UserRepository
	cfg    config.Config
	logger *zap.Logger
}

// NewAccountService constructs the service.
func NewAccountService(users repository.UserRepository, cfg config.Config, logger *zap.Logger) *AccountService {
	return &AccountService{users: users, cfg: cfg, logger: logger}
}

// SignUp validates the candidate record and persists it. Whether the new
// user starts with a token is a configuration policy; by default it starts
// signed out and a token is only issued by SignIn.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	user := domain.User{
		Username:             in.Username,
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}

	if v := validation.User(user); v.Any() {
		return domain.User{}, &ValidationError{Fields: v}
	}

	if s.cfg.TokenOnSignup {
		token := uuid.NewString()
		user.Token = &token
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		// The unique index is the only uniqueness check; a lost race
		// surfaces here, never as two successful signups.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return domain.User{}, newUsernameTakenError()
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up",
		zap.Int64("user_id", created.ID),
		zap.String("username", created.Username),
	)
	return created, nil
}

// SignIn matches username and password byte-exactly against the stored
// values and issues a fresh opaque token on success.
func (s *AccountService) SignIn(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("signin rejected", zap.String("username", username))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("find user by credentials: %w", err)
	}

	token := uuid.NewString()
	updated, err := s.users.SetToken(ctx, user.ID, &token)
	if err != nil {
		// The record can disappear between lookup and token write; treat
		// that the same as a credential miss.
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user signed in", zap.Int64("user_id", updated.ID))
	return updated, nil
}

// Profile returns the user holding token.
func (s *AccountService) Profile(ctx context.Context, token string) (domain.User, error) {
	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("find user by token: %w", err)
	}
	return user, nil
}

// UpdateProfile merges the supplied fields into the stored record,
// re-validates the merged result, and persists it. Fields left nil keep
// their prior values.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, in UpdateInput) (domain.User, error) {
	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("find user by token: %w", err)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		user.Password = *in.Password
	}
	if in.PasswordConfirmation != nil {
		user.PasswordConfirmation = *in.PasswordConfirmation
	}

	if v := validation.User(user); v.Any() {
		return domain.User{}, &ValidationError{Fields: v}
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return domain.User{}, newUsernameTakenError()
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("profile updated", zap.Int64("user_id", updated.ID))
	return updated, nil
}

// SignOut clears the token in a single store write. A token that no longer
// resolves reports ErrNotFound: the side effect of repeated signout is
// idempotent, the lookup is not, and "not found" is the honest answer for
// an already-invalid token.
func (s *AccountService) SignOut(ctx context.Context, token string) error {
	if err := s.users.ClearToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("clear token: %w", err)
	}
	s.logger.Info("user signed out")
	return nil
}

// Delete permanently removes the user holding token. Same not-found
// semantics as SignOut; there is no soft delete.
func (s *AccountService) Delete(ctx context.Context, token string) error {
	if err := s.users.DeleteByToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("user deleted")
	return nil
}
