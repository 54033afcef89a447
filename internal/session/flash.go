package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "flash"

// Notice kinds.
const (
	KindSuccess = "success"
	KindWarning = "warning"
	KindError   = "error"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// SetFlash stores n for the next request.
func SetFlash(w http.ResponseWriter, n Notice) {
	b, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return Notice{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(b, &n); err != nil || n.Title == "" {
		return Notice{}, false
	}
	return n, true
}
