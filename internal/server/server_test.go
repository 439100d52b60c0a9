package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestServer stands up the full application over an in-memory database,
// with throwaway templates and a fixed session secret.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"base.html":     `{{define "base"}}[{{.Flash}}]{{template "content" .}}{{end}}`,
		"register.html": `{{define "content"}}register-form{{end}}`,
		"login.html":    `{{define "content"}}login-form{{end}}`,
		"home.html":     `{{define "content"}}Welcome, {{.Username}}!{{end}}`,
		"game.html":     `{{define "content"}}high score: {{.HighScore}}{{end}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	srv, err := New(Config{
		Port:          0,
		TemplateDir:   dir,
		DBPath:        ":memory:",
		SessionSecret: []byte("0123456789abcdef0123456789abcdef"),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// newBrowser returns a redirect-following client with a cookie jar, which is
// what the flash+redirect flow assumes on the other end.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postForm(t *testing.T, c *http.Client, url string, form url.Values) (int, string) {
	t.Helper()
	resp, err := c.PostForm(url, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestFullUserFlow(t *testing.T) {
	ts := newTestServer(t)
	browser := newBrowser(t)
	creds := url.Values{"username": {"alice"}, "password": {"hunter2"}}

	// Gated pages bounce anonymous visitors to the login form, with a prompt.
	_, body := get(t, browser, ts.URL+"/home")
	require.Contains(t, body, "login-form")
	require.Contains(t, body, "You need to log in first.")

	// Register; the browser follows the redirect to /login and sees the notice.
	_, body = postForm(t, browser, ts.URL+"/register", creds)
	require.Contains(t, body, "login-form")
	require.Contains(t, body, "Registration successful. Please login.")

	// Login with the same credentials lands on /home.
	_, body = postForm(t, browser, ts.URL+"/login", creds)
	require.Contains(t, body, "Welcome, alice!")

	// The game page renders the session's high score, zero for a new account.
	_, body = get(t, browser, ts.URL+"/game")
	require.Contains(t, body, "high score: 0")

	// Submit a score: bare 204, empty body.
	resp, err := browser.Post(ts.URL+"/update_high_score", "application/json",
		strings.NewReader(`{"high_score": 42}`))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, raw)

	// The session cookie still carries the login-time snapshot, so /game is
	// stale until the user logs in again.
	_, body = get(t, browser, ts.URL+"/game")
	require.Contains(t, body, "high score: 0")

	_, body = postForm(t, browser, ts.URL+"/login", creds)
	require.Contains(t, body, "Welcome, alice!")
	_, body = get(t, browser, ts.URL+"/game")
	require.Contains(t, body, "high score: 42")

	// Logout, twice — idempotent — then the gate holds again.
	_, body = get(t, browser, ts.URL+"/logout")
	require.Contains(t, body, "You have been logged out.")
	_, body = get(t, browser, ts.URL+"/logout")
	require.Contains(t, body, "You have been logged out.")

	_, body = get(t, browser, ts.URL+"/home")
	require.Contains(t, body, "login-form")
}

func TestDuplicateRegistration(t *testing.T) {
	ts := newTestServer(t)
	creds := url.Values{"username": {"alice"}, "password": {"first"}}

	first := newBrowser(t)
	_, body := postForm(t, first, ts.URL+"/register", creds)
	require.Contains(t, body, "Registration successful. Please login.")

	// Second registration with the same username fails and bounces back to
	// the registration form.
	second := newBrowser(t)
	_, body = postForm(t, second, ts.URL+"/register",
		url.Values{"username": {"alice"}, "password": {"second"}})
	require.Contains(t, body, "register-form")
	require.Contains(t, body, "Username already exists.")

	// The original credentials still work.
	_, body = postForm(t, first, ts.URL+"/login", creds)
	require.Contains(t, body, "Welcome, alice!")
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	ts := newTestServer(t)

	setup := newBrowser(t)
	postForm(t, setup, ts.URL+"/register",
		url.Values{"username": {"alice"}, "password": {"correct"}})

	_, wrongPw := postForm(t, newBrowser(t), ts.URL+"/login",
		url.Values{"username": {"alice"}, "password": {"wrong"}})
	_, unknown := postForm(t, newBrowser(t), ts.URL+"/login",
		url.Values{"username": {"nobody"}, "password": {"whatever"}})

	require.Contains(t, wrongPw, "Invalid username or password.")
	require.Contains(t, unknown, "Invalid username or password.")
}

func TestAnonymousScoreSubmitIsSilentNoOp(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/update_high_score", "application/json",
		strings.NewReader(`{"high_score": 42}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
