package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eventdash/eventdash-go/internal/api"
	"github.com/eventdash/eventdash-go/internal/session"
)

// RequireSession decodes the bearer cookie of a protected request. An
// expired or undecodable token is cleared and the user is sent back to
// the login page with a notice; a valid one puts the Identity and the
// token into the request context.
func RequireSession(store *session.CookieStore, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := store.Read(r)
			if token == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			id, err := session.Check(token, now())
			if err != nil {
				notice := session.Notice{Kind: session.KindWarning, Title: "Session expired please relogin"}
				if !errors.Is(err, session.ErrTokenExpired) {
					slog.Warn("undecodable session token", "path", r.URL.Path, "error", err)
					notice.Title = "Invalid session please relogin"
				}
				store.Clear(w)
				session.SetFlash(w, notice)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			ctx := session.WithIdentity(r.Context(), id)
			ctx = api.ContextWithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
