package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sakif/game-arcade/internal/session"
)

// gatedRequest runs a page handler behind session.Require, the way the
// router wires it, optionally carrying an authenticated session.
func gatedRequest(t *testing.T, env *testEnv, h http.HandlerFunc, path string, sess *session.Session) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	if sess != nil {
		loginRec := httptest.NewRecorder()
		require.NoError(t, env.sessions.Write(loginRec, *sess))
		r.AddCookie(sessionCookie(loginRec))
	}

	rec := httptest.NewRecorder()
	session.Require(env.sessions)(h).ServeHTTP(rec, r)
	return rec
}

func TestHandleHome(t *testing.T) {
	env := newTestEnv(t)

	rec := gatedRequest(t, env, env.pages.HandleHome, "/home",
		&session.Session{UserID: 1, Username: "alice"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Welcome, alice!")
}

func TestHandleHome_AnonymousRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := gatedRequest(t, env, env.pages.HandleHome, "/home", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Equal(t, "You need to log in first.", flashFrom(t, rec))
}

func TestHandleGame_ShowsCachedHighScore(t *testing.T) {
	env := newTestEnv(t)

	rec := gatedRequest(t, env, env.pages.HandleGame, "/game",
		&session.Session{UserID: 1, Username: "alice", HighScore: 1200})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alice scored 1200")
}

func TestHandleGame_AnonymousRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := gatedRequest(t, env, env.pages.HandleGame, "/game", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRender_PopsFlashIntoPage(t *testing.T) {
	env := newTestEnv(t)

	// A flash set by a previous redirect renders once and is cleared.
	setRec := httptest.NewRecorder()
	session.SetFlash(setRec, "You have been logged out.")

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range setRec.Result().Cookies() {
		r.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.auth.HandleLoginPage(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "You have been logged out.")

	// The render deleted the flash cookie.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge == -1 {
			cleared = true
		}
	}
	require.True(t, cleared, "rendering must clear the flash cookie")
}
