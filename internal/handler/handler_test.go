package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eventdash/eventdash-go/internal/api"
	"github.com/eventdash/eventdash-go/internal/api/apitest"
	"github.com/eventdash/eventdash-go/internal/middleware"
	"github.com/eventdash/eventdash-go/internal/model"
	"github.com/eventdash/eventdash-go/internal/service"
	"github.com/eventdash/eventdash-go/internal/session"
)

var fixedNow = time.Date(2025, time.March, 5, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	fake   *apitest.Server
	router http.Handler
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := apitest.NewServer()
	t.Cleanup(fake.Close)

	client := api.NewClient(api.Config{BaseURL: fake.URL})
	store := session.NewCookieStore("access_token", false)
	views, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}

	authHandler := NewAuthHandler(service.NewAuthService(client), store, views)
	eventHandler := NewEventHandler(service.NewEventService(client, 3), store, views)
	eventHandler.now = func() time.Time { return fixedNow }

	r := chi.NewRouter()
	r.Get("/", authHandler.HandleRoot)
	r.Get("/login", authHandler.HandleLoginPage)
	r.Post("/login", authHandler.HandleLogin)
	r.Get("/register", authHandler.HandleRegisterPage)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/logout", authHandler.HandleLogout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(store, func() time.Time { return fixedNow }))
		r.Get("/admin", eventHandler.HandleList)
		r.Post("/admin/events", eventHandler.HandleCreate)
		r.Post("/admin/events/{id}", eventHandler.HandleUpdate)
		r.Get("/admin/events/{id}/delete", eventHandler.HandleConfirmDelete)
		r.Post("/admin/events/{id}/delete", eventHandler.HandleDelete)
	})

	return &testEnv{
		fake:   fake,
		router: r,
		token:  fake.Token(1, "Ada Lovelace", fixedNow.Add(time.Hour)),
	}
}

func (e *testEnv) get(t *testing.T, path string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authed {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: e.token})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(t *testing.T, path string, form url.Values, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if authed {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: e.token})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seed(t *testing.T, n int) []model.Event {
	t.Helper()
	events := make([]model.Event, 0, n)
	for i := range n {
		d := model.NewDate(fixedNow.AddDate(0, 0, i))
		name := "Event " + string(rune('A'+i))
		events = append(events, model.Event{Name: name, Description: "About " + name, Date: d})
	}
	return e.fake.Seed(events...)
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q", want)
	}
}
