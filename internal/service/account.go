// Package service contains the business logic layer: validation and the
// rules that sit between the HTTP handlers and the repository.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/game-arcade/internal/apperror"
	"github.com/sakif/game-arcade/internal/auth"
	"github.com/sakif/game-arcade/internal/model"
	"github.com/sakif/game-arcade/internal/repository"
)

// loginFailedMessage is shown for both an unknown username and a wrong
// password. The two cases must stay indistinguishable to the client so the
// login form cannot be used to enumerate accounts.
const loginFailedMessage = "Invalid username or password."

// AccountService handles registration and login.
//
// It takes the repository interface, not the concrete sqlite.DB, so tests can
// substitute an in-memory fake.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with its dependencies.
func NewAccountService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account from a username and plaintext password.
//
// Both fields are required; a taken username surfaces as apperror.ErrConflict.
// The password is bcrypt-hashed before it ever reaches the repository — the
// plaintext is not stored, logged, or returned.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("service/account: register: %w",
			apperror.ValidationFailed("username", "Username and password are required."))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/account: register %q: %w", username, err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/account: register %q: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login checks credentials and returns the account on success.
//
// Unknown usernames and wrong passwords both return apperror.ErrUnauthorized
// with the identical message; only an unexpected storage failure propagates
// as anything else. Note the lookup-miss path skips the bcrypt compare, so
// response timing is not perfectly uniform — a property worth testing for,
// not one this code guarantees.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("service/account: login: %w",
			apperror.ValidationFailed("username", "Username and password are required."))
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("service/account: login %q: %w",
				username, apperror.Unauthorized(loginFailedMessage))
		}
		return nil, fmt.Errorf("service/account: login %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed", slog.String("username", username))
		return nil, fmt.Errorf("service/account: login %q: %w",
			username, apperror.Unauthorized(loginFailedMessage))
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}
