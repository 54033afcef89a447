package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/eventdash/eventdash-go/internal/api"
	"github.com/eventdash/eventdash-go/internal/service"
	"github.com/eventdash/eventdash-go/internal/session"
)

// AuthHandler handles the login, registration and logout pages.
type AuthHandler struct {
	service *service.AuthService
	store   *session.CookieStore
	views   *Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, store *session.CookieStore, views *Renderer) *AuthHandler {
	return &AuthHandler{service: svc, store: store, views: views}
}

type authView struct {
	Fullname string
	Email    string
	Errors   map[string]string
}

// HandleRoot handles GET /. Only requests carrying a cookie get here.
func (h *AuthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleLoginPage handles GET /login.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.render(w, r, http.StatusOK, "login.html", "Login", authView{}, nil)
}

// HandleLogin handles POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	form := service.LoginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	token, id, err := h.service.Login(r.Context(), form)
	if err != nil {
		view := authView{Email: form.Email}
		if fields, ok := fieldErrors(err); ok {
			view.Errors = fields
			h.views.render(w, r, http.StatusUnprocessableEntity, "login.html", "Login", view, nil)
			return
		}
		slog.Warn("login failed", "email", form.Email, "error", err)
		h.views.render(w, r, statusFor(err), "login.html", "Login", view, errorNotice("Login failed", loginMessage(err)))
		return
	}

	h.store.Write(w, token)
	session.SetFlash(w, session.Notice{Kind: session.KindSuccess, Title: "Login Success"})
	slog.Info("user logged in", "user_id", id.UserID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleRegisterPage handles GET /register.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.views.render(w, r, http.StatusOK, "register.html", "Register", authView{}, nil)
}

// HandleRegister handles POST /register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	form := service.RegisterForm{
		Fullname: strings.TrimSpace(r.FormValue("fullname")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	if err := h.service.Register(r.Context(), form); err != nil {
		view := authView{Fullname: form.Fullname, Email: form.Email}
		if fields, ok := fieldErrors(err); ok {
			view.Errors = fields
			h.views.render(w, r, http.StatusUnprocessableEntity, "register.html", "Register", view, nil)
			return
		}
		slog.Warn("registration failed", "email", form.Email, "error", err)
		h.views.render(w, r, statusFor(err), "register.html", "Register", view, errorNotice("Registration failed", api.Message(err)))
		return
	}

	session.SetFlash(w, session.Notice{Kind: session.KindSuccess, Title: "Successfully Registered"})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout handles POST /logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func loginMessage(err error) string {
	if isSessionError(err) {
		return "The server returned an unusable token"
	}
	return api.Message(err)
}
