package session

import (
	"encoding/base64"
	"net/http"
)

// flashCookie holds a one-time notice shown on the next rendered page.
// Read-once: PopFlash deletes it as it reads it.
const flashCookie = "flash"

// flashTTL keeps an unread notice from lingering forever.
const flashTTL = 300 // seconds

// SetFlash stores a notice to be displayed on the next page render.
//
// The message is base64url-encoded because cookie values cannot carry spaces
// or punctuation like "Username already exists." verbatim. The flash is not
// signed — it is a display hint, not an authority.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   flashTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and deletes its cookie so it
// renders exactly once. Returns "" when there is no notice or it is garbled.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	// Delete regardless of whether the value decodes.
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
