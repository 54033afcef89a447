// Package server assembles the dashboard router.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"github.com/eventdash/eventdash-go/internal/api"
	"github.com/eventdash/eventdash-go/internal/config"
	"github.com/eventdash/eventdash-go/internal/handler"
	"github.com/eventdash/eventdash-go/internal/middleware"
	"github.com/eventdash/eventdash-go/internal/service"
	"github.com/eventdash/eventdash-go/internal/session"
)

// NewRouter wires handlers, services and middleware around client.
// Background work started for the router stops when ctx is done.
func NewRouter(ctx context.Context, cfg config.Config, client *api.Client) (http.Handler, error) {
	views, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}

	store := session.NewCookieStore(cfg.CookieName, cfg.CookieSecure)

	authHandler := handler.NewAuthHandler(service.NewAuthService(client), store, views)
	eventHandler := handler.NewEventHandler(service.NewEventService(client, cfg.PageLimit), store, views)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	if !cfg.CookieSecure {
		r.Use(plaintextHTTP)
	}
	r.Use(csrf.Protect(cfg.CSRFSecret(),
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	))
	r.Use(middleware.RouteGuard(store, middleware.AdminPath))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", authHandler.HandleRoot)
	r.Get("/login", authHandler.HandleLoginPage)
	r.Get("/register", authHandler.HandleRegisterPage)
	r.Post("/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.AuthRateRPS, cfg.AuthRateBurst))
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/register", authHandler.HandleRegister)
	})

	r.Route(middleware.AdminPath, func(r chi.Router) {
		r.Use(middleware.RequireSession(store, time.Now))
		r.Get("/", eventHandler.HandleList)
		r.Post("/events", eventHandler.HandleCreate)
		r.Post("/events/{id}", eventHandler.HandleUpdate)
		r.Get("/events/{id}/delete", eventHandler.HandleConfirmDelete)
		r.Post("/events/{id}/delete", eventHandler.HandleDelete)
	})

	return r, nil
}

// plaintextHTTP tells the CSRF middleware the request arrived over plain
// http, which skips its https-only Referer check.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	slog.Warn("csrf check failed", "path", r.URL.Path, "reason", csrf.FailureReason(r))
	http.Error(w, "Forbidden - invalid or missing CSRF token", http.StatusForbidden)
}
