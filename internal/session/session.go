// Package session implements signed-cookie browser sessions.
//
// A session is not stored server-side. Everything it carries — user id,
// username, cached high score — lives inside an HS256-signed token set as an
// HttpOnly cookie. The signature makes the token tamper-proof without any
// database lookup; it does not make it secret, so nothing sensitive beyond
// those three fields goes in.
//
// The signing secret is injected at construction. main.go generates a fresh
// random secret per process unless SESSION_SECRET pins one, which means every
// session dies when the process restarts. That is a known property of the
// design, not an accident.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const issuer = "game-arcade"

// defaultTTL bounds how long a session cookie stays valid. Matches a typical
// browser-session length; logout or a restart invalidates it sooner.
const defaultTTL = 24 * time.Hour

// ErrNoSession is returned when a request carries no valid session — the
// cookie is missing, expired, or fails signature verification. Callers treat
// all three the same: the user is anonymous.
var ErrNoSession = errors.New("session: no valid session")

// Session is the authenticated state carried by the signed cookie.
//
// HighScore is a snapshot taken at login. Score updates persist to the
// database without re-issuing the cookie, so this value can lag the stored
// row until the user logs in again.
type Session struct {
	UserID    int64
	Username  string
	HighScore int64
}

// claims is the token payload: the registered claims plus our session fields.
// The user id travels in the standard "sub" claim.
type claims struct {
	Username  string `json:"username"`
	HighScore int64  `json:"high_score"`
	jwt.RegisteredClaims
}

// Manager issues, verifies, and clears session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager with the given signing secret.
// The secret must be at least 16 bytes; 32 random bytes is the norm.
func NewManager(secret []byte) (*Manager, error) {
	if len(secret) < 16 {
		return nil, errors.New("session: signing secret must be at least 16 bytes")
	}
	return &Manager{secret: secret, ttl: defaultTTL}, nil
}

// Issue signs a new session token for s.
//
// Each token gets a unique jti so two logins by the same user in the same
// second still produce distinct tokens.
func (m *Manager) Issue(s Session) (string, error) {
	now := time.Now()

	c := claims{
		Username:  s.Username,
		HighScore: s.HighScore,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(s.UserID, 10),
			Issuer:    issuer,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: signing token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token string and returns the Session it carries.
//
// Verification pins the algorithm to HS256 and requires our issuer and a
// future expiry. Any failure collapses to ErrNoSession — from the caller's
// point of view a tampered cookie and a missing one are the same thing.
func (m *Manager) Decode(tokenStr string) (Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("session: unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Session{}, ErrNoSession
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Session{}, ErrNoSession
	}

	return Session{
		UserID:    userID,
		Username:  c.Username,
		HighScore: c.HighScore,
	}, nil
}

// FromRequest reads and verifies the session cookie on r.
// Returns ErrNoSession for anonymous requests.
func (m *Manager) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return m.Decode(cookie.Value)
}

// Write issues a token for s and sets it as the session cookie.
//
// HttpOnly keeps the token away from page scripts; SameSite=Lax sends it on
// top-level navigations but not cross-site POSTs. Secure is left off for
// local HTTP serving.
func (m *Manager) Write(w http.ResponseWriter, s Session) error {
	token, err := m.Issue(s)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear deletes the session cookie. Safe to call when no session exists —
// logout is idempotent.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
