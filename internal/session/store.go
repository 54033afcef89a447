package session

import "net/http"

// CookieStore keeps the bearer token in a single cookie.
type CookieStore struct {
	Name   string
	Secure bool
}

// NewCookieStore creates a CookieStore for the named cookie.
func NewCookieStore(name string, secure bool) *CookieStore {
	return &CookieStore{Name: name, Secure: secure}
}

// Read returns the stored token, or "" when there is none.
func (s *CookieStore) Read(r *http.Request) string {
	cookie, err := r.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Write stores token. The cookie lives for the browser session; the
// token's own exp claim bounds how long it is honoured.
func (s *CookieStore) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Secure,
	})
}

// Clear removes the stored token.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Secure,
	})
}
