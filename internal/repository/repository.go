// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/game-arcade/internal/model"
)

// UserRepository is the persistence contract for player accounts.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID and
	// timestamps. Returns apperror.ErrConflict (wrapped) when the username
	// is already taken; existing rows are untouched in that case.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername returns the user with the given username, or a wrapped
	// apperror.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByID returns the user with the given id, or a wrapped
	// apperror.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// UpdateHighScore overwrites the user's stored high score. No
	// monotonicity check: any value wins, last writer wins.
	UpdateHighScore(ctx context.Context, userID, score int64) error
}
