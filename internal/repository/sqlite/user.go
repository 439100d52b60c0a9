package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/game-arcade/internal/apperror"
	"github.com/sakif/game-arcade/internal/model"
	"github.com/sakif/game-arcade/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user row and fills in the generated ID and timestamps.
//
// A duplicate username trips the UNIQUE constraint; that maps to
// apperror.ErrConflict so the handler can flash "Username already exists."
// The failed insert leaves existing rows exactly as they were.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO Users (username, password_hash, high_score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.HighScore,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sqlite: inserting user %q: %w",
				user.Username, apperror.Conflict("Username already exists."))
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByUsername retrieves a user by their unique username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx, `username = ?`, username)
}

// GetByID retrieves a user by their primary key.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return db.getUser(ctx, `user_id = ?`, id)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, username, password_hash, high_score, created_at, updated_at
		 FROM Users WHERE `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.HighScore,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user (%v): %w", arg, err)
	}

	return &u, nil
}

// UpdateHighScore overwrites the stored high score for userID.
// Single-statement write: last writer wins, no monotonicity check.
func (db *DB) UpdateHighScore(ctx context.Context, userID, score int64) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE Users SET high_score = ?, updated_at = ? WHERE user_id = ?`,
		score, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating high score for user %d: %w", userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating high score for user %d: %w", userID, err)
	}
	if n == 0 {
		return apperror.NotFound("user", fmt.Sprint(userID))
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
//
// modernc.org/sqlite wraps constraint failures in driver errors without an
// exported sentinel, so we match the stable message text SQLite has emitted
// for this case since 3.x.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
