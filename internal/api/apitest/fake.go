// Package apitest provides an in-memory stand-in for the remote events
// API, served over httptest.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventdash/eventdash-go/internal/model"
)

// Request is one call received by the fake.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
}

type user struct {
	id       int64
	fullname string
	password string
}

type failure struct {
	status  int
	message string
}

// Server is a fake remote API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]user
	events   map[int64]model.Event
	nextID   int64
	requests []Request
	failures map[string]failure

	// TokenTTL is the lifetime of tokens issued by /login.
	TokenTTL time.Duration
	// TokenOverride, when set, is returned by /login instead of a minted token.
	TokenOverride string
}

// NewServer starts a fake API. Call Close when done.
func NewServer() *Server {
	s := &Server{
		users:    make(map[string]user),
		events:   make(map[int64]model.Event),
		nextID:   1,
		failures: make(map[string]failure),
		TokenTTL: time.Hour,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /api/events", s.authed(s.handleList))
	mux.HandleFunc("POST /api/events", s.authed(s.handleCreate))
	mux.HandleFunc("PUT /api/events/{id}", s.authed(s.handleUpdate))
	mux.HandleFunc("DELETE /api/events/{id}", s.authed(s.handleDelete))
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// AddUser registers a user directly.
func (s *Server) AddUser(fullname, email, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.users) + 1)
	s.users[email] = user{id: id, fullname: fullname, password: password}
	return id
}

// Seed stores events and returns them with their assigned ids.
func (s *Server) Seed(events ...model.Event) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		e.ID = s.nextID
		s.nextID++
		s.events[e.ID] = e
		out = append(out, e)
	}
	return out
}

// Event returns the stored event with id.
func (s *Server) Event(id int64) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e, ok
}

// Fail makes every request matching method and path (exact, without
// query) answer with status and message until cleared with status 0.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	if status == 0 {
		delete(s.failures, key)
		return
	}
	s.failures[key] = failure{status: status, message: message}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path prefix.
func (s *Server) Count(method, pathPrefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, pathPrefix) {
			n++
		}
	}
	return n
}

// Token mints a token the way /login does.
func (s *Server) Token(id int64, fullname string, exp time.Time) string {
	claims := jwt.MapClaims{
		"id":       id,
		"fullname": fullname,
		"exp":      exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("fake-api-secret"))
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if failing {
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	override := s.TokenOverride
	ttl := s.TokenTTL
	s.mu.Unlock()

	if !ok || u.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}

	token := override
	if token == "" {
		token = s.Token(u.id, u.fullname, time.Now().Add(ttl))
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{AccessToken: token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	_, taken := s.users[req.Email]
	s.mu.Unlock()
	if taken {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered"})
		return
	}

	s.AddUser(req.Fullname, req.Email, req.Password)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "registered"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	all := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		all = append(all, e)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page := []model.Event{}
	if offset < len(all) {
		end := min(offset+limit, len(all))
		page = all[offset:end]
	}
	writeJSON(w, http.StatusOK, model.EventPage{Events: page, TotalRows: len(all)})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid event"})
		return
	}
	created := s.Seed(model.Event{Name: req.Name, Description: req.Description, Date: req.Date})
	writeJSON(w, http.StatusCreated, created[0])
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid id"})
		return
	}
	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid event"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Event not found"})
		return
	}
	e := model.Event{ID: id, Name: req.Name, Description: req.Description, Date: req.Date}
	s.events[id] = e
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Event not found"})
		return
	}
	delete(s.events, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
