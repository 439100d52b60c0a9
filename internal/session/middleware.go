package session

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the session value.
type contextKey struct{}

var sessionKey contextKey

// Require is a middleware that gates HTML pages behind an active session.
//
// Anonymous requests get a flash notice and a redirect to the login page —
// never an error status; this is a browser-facing app, not a JSON API. On
// success the Session is stored in the request context for handlers.
func Require(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.FromRequest(r)
			if err != nil {
				SetFlash(w, "You need to log in first.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext retrieves the Session stored by Require.
// Returns (Session{}, false) for anonymous requests.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}
