package middleware

import (
	"net/http"
	"strings"

	"github.com/eventdash/eventdash-go/internal/session"
)

const (
	LoginPath = "/login"
	AdminPath = "/admin"
)

// RouteGuard redirects on cookie presence alone, before any page renders:
// protected paths without a cookie go to the login page, the login page
// with a cookie goes to the admin area, and the root without a cookie goes
// to the login page. Everything else passes through unmodified.
func RouteGuard(store *session.CookieStore, protected ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasToken := store.Read(r) != ""
			path := r.URL.Path

			switch {
			case !hasToken && isProtected(path, protected):
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			case hasToken && path == LoginPath:
				http.Redirect(w, r, AdminPath, http.StatusSeeOther)
				return
			case !hasToken && path == "/":
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}
