package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/game-arcade/internal/session"
)

// PageHandler renders the session-gated pages. Both routes sit behind
// session.Require, so the session is always in the request context here.
type PageHandler struct {
	templates *Templates
	logger    *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(templates *Templates, logger *slog.Logger) *PageHandler {
	return &PageHandler{templates: templates, logger: logger}
}

// HandleHome greets the logged-in user.
//
// HTTP: GET /home
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		// Unreachable behind session.Require; kept as a guard.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.templates.render(w, r, "home", map[string]any{
		"Title":    "Home",
		"Username": sess.Username,
	})
}

// HandleGame shows the game page with the session's cached high score.
//
// HTTP: GET /game
//
// The score shown is the one captured at login. /update_high_score writes to
// the database without re-issuing the cookie, so this value can lag until the
// user logs in again.
func (h *PageHandler) HandleGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.templates.render(w, r, "game", map[string]any{
		"Title":     "Game",
		"Username":  sess.Username,
		"HighScore": sess.HighScore,
	})
}
