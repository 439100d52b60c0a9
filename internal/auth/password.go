// Package auth provides password hashing for account credentials.
//
// bcrypt generates a random salt per call and embeds it in the output, so two
// users with the same password store different values and no separate salt
// column is needed. Comparison is constant-time inside the library.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for new hashes. Roughly 250ms on
// current server hardware — negligible at login, expensive for brute force.
const defaultCost = 12

// PasswordService hashes and verifies passwords.
//
// It is a struct rather than free functions so the cost can be lowered in
// tests: cost 4 (the bcrypt minimum) turns ~250ms per hash into milliseconds.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom (usually
// minimal) cost. Not for production use.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password with bcrypt.
//
// The returned string is self-contained (version, cost, salt, digest) and is
// stored directly in the users table. Passwords over 72 bytes are rejected
// rather than silently truncated, which is what bcrypt would otherwise do.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash.
// Returns nil on match, a non-nil error otherwise.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
