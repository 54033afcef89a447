package service

import (
	"context"
	"fmt"

	"github.com/eventdash/eventdash-go/internal/model"
	"github.com/eventdash/eventdash-go/internal/session"
)

const minPasswordLength = 6

// AuthAPI is the remote side of login and registration.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	Register(ctx context.Context, req model.RegisterRequest) error
}

// LoginForm holds the raw values of the login form.
type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	var v validator
	v.email("email", f.Email)
	v.password("password", f.Password)
	return v.err()
}

// RegisterForm holds the raw values of the registration form.
type RegisterForm struct {
	Fullname string
	Email    string
	Password string
}

func (f RegisterForm) Validate() error {
	var v validator
	v.required("fullname", f.Fullname, "Required")
	v.email("email", f.Email)
	v.password("password", f.Password)
	return v.err()
}

// AuthService handles login and registration against the remote API.
type AuthService struct {
	api AuthAPI
}

// NewAuthService creates a new AuthService.
func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login validates the form, obtains a token and decodes it. A token that
// cannot be decoded is rejected so it never reaches the cookie.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (string, session.Identity, error) {
	if err := form.Validate(); err != nil {
		return "", session.Identity{}, err
	}

	token, err := s.api.Login(ctx, model.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return "", session.Identity{}, fmt.Errorf("login: %w", err)
	}

	claims, err := session.DecodeClaims(token)
	if err != nil {
		return "", session.Identity{}, fmt.Errorf("login: %w", err)
	}
	return token, claims.Identity(), nil
}

// Register validates the form and creates the account.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	req := model.RegisterRequest{Fullname: form.Fullname, Email: form.Email, Password: form.Password}
	if err := s.api.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}
