package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/game-arcade/internal/apperror"
	"github.com/sakif/game-arcade/internal/service"
	"github.com/sakif/game-arcade/internal/session"
)

// AuthHandler serves the register/login/logout flows.
//
//	GET  /register → form (already logged in? go to /home)
//	POST /register → create the account, flash, redirect to /login
//	GET  /login    → form
//	POST /login    → verify credentials, set session cookie, redirect to /home
//	GET  /logout   → clear the cookie, flash, redirect to /login
type AuthHandler struct {
	accounts  *service.AccountService
	sessions  *session.Manager
	templates *Templates
	logger    *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	accounts *service.AccountService,
	sessions *session.Manager,
	templates *Templates,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		sessions:  sessions,
		templates: templates,
		logger:    logger,
	}
}

// HandleRegisterPage renders the registration form.
// A user who already holds a session is sent to /home instead.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	h.templates.render(w, r, "register", map[string]any{"Title": "Register"})
}

// HandleRegister processes the registration form.
//
// Every failure mode is a flash notice plus a redirect back to the form:
// missing fields, a taken username — the user retries, nothing hard-fails.
// Success flashes a notice and lands on the login form.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		redirectWithFlash(w, r, "/register", "Username and password are required.")
		return
	}

	_, err := h.accounts.Register(r.Context(), username, password)
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/login", "Registration successful. Please login.")
	case errors.Is(err, apperror.ErrConflict), errors.Is(err, apperror.ErrValidation):
		redirectWithFlash(w, r, "/register", apperror.Message(err))
	default:
		h.logger.Error("registration failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleLoginPage renders the login form.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.render(w, r, "login", map[string]any{"Title": "Login"})
}

// HandleLogin processes the login form.
//
// On success the session cookie carries the user's id, username, and current
// high score — the pages render from the cookie without another lookup. Bad
// credentials of either kind flash the same generic notice.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		redirectWithFlash(w, r, "/login", "Username and password are required.")
		return
	}

	user, err := h.accounts.Login(r.Context(), username, password)
	switch {
	case err == nil:
		// fall through to issue the session
	case errors.Is(err, apperror.ErrUnauthorized), errors.Is(err, apperror.ErrValidation):
		redirectWithFlash(w, r, "/login", apperror.Message(err))
		return
	default:
		h.logger.Error("login failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Write(w, session.Session{
		UserID:    user.ID,
		Username:  user.Username,
		HighScore: user.HighScore,
	}); err != nil {
		h.logger.Error("issuing session failed",
			slog.Int64("userID", user.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLogout clears the session cookie and redirects to the login form.
// Works the same whether or not a session existed — logging out twice is fine.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	redirectWithFlash(w, r, "/login", "You have been logged out.")
}
