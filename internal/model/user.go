// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered player account.
//
// The primary key is an integer assigned by SQLite's AUTOINCREMENT — it never
// changes for the lifetime of the row. Username carries a UNIQUE constraint,
// so a violated insert fails without touching existing rows.
//
// PasswordHash is the full bcrypt output (salt embedded, never reversible).
// The plaintext password exists only transiently inside the register/login
// request and is never stored or logged.
type User struct {
	ID           int64     `json:"id"        db:"user_id"`
	Username     string    `json:"username"  db:"username"`
	PasswordHash string    `json:"-"         db:"password_hash"` // never serialized
	HighScore    int64     `json:"highScore" db:"high_score"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
