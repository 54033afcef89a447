package handler

import (
	"net/http"
	"net/url"
	"testing"
)

func TestLoginPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/login", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	assertContains(t, rec.Body.String(), `action="/login"`)
	assertContains(t, rec.Body.String(), `href="/register"`)
}

func TestLoginValidationSkipsAPI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/login", url.Values{"email": {"not-an-email"}, "password": {"123"}}, false)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body, "Invalid email address")
	assertContains(t, body, "Password must be at least 6 characters")
	assertContains(t, body, `value="not-an-email"`)
	if n := env.fake.Count(http.MethodPost, "/login"); n != 0 {
		t.Errorf("API login calls = %d, want 0", n)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.fake.AddUser("Ada Lovelace", "ada@example.com", "secret1")

	rec := env.post(t, "/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong-pass"}}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	assertContains(t, rec.Body.String(), "Invalid email or password")
	if c := cookie(rec, "access_token"); c != nil {
		t.Errorf("access_token set on failed login: %+v", c)
	}
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.fake.AddUser("Ada Lovelace", "ada@example.com", "secret1")

	rec := env.post(t, "/login", url.Values{"email": {"ada@example.com"}, "password": {"secret1"}}, false)
	assertRedirect(t, rec, "/admin")

	c := cookie(rec, "access_token")
	if c == nil || c.Value == "" {
		t.Fatal("access_token cookie not set")
	}
	if !c.HttpOnly {
		t.Error("access_token cookie is not HttpOnly")
	}
	if cookie(rec, "flash") == nil {
		t.Error("expected Login Success notice")
	}
}

func TestLoginUndecodableTokenNotStored(t *testing.T) {
	env := newTestEnv(t)
	env.fake.AddUser("Ada Lovelace", "ada@example.com", "secret1")
	env.fake.TokenOverride = "opaque-but-not-a-jwt"

	rec := env.post(t, "/login", url.Values{"email": {"ada@example.com"}, "password": {"secret1"}}, false)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	assertContains(t, rec.Body.String(), "unusable token")
	if c := cookie(rec, "access_token"); c != nil {
		t.Errorf("access_token set for undecodable token: %+v", c)
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/register", url.Values{
		"fullname": {"Grace Hopper"},
		"email":    {"grace@example.com"},
		"password": {"cobol1"},
	}, false)
	assertRedirect(t, rec, "/login")

	login := env.post(t, "/login", url.Values{"email": {"grace@example.com"}, "password": {"cobol1"}}, false)
	assertRedirect(t, login, "/admin")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/register", url.Values{"email": {"grace@example.com"}, "password": {"cobol1"}}, false)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	assertContains(t, rec.Body.String(), "Required")
	if n := env.fake.Count(http.MethodPost, "/register"); n != 0 {
		t.Errorf("API register calls = %d, want 0", n)
	}
}

func TestRegisterConflict(t *testing.T) {
	env := newTestEnv(t)
	env.fake.AddUser("Grace Hopper", "grace@example.com", "cobol1")

	rec := env.post(t, "/register", url.Values{
		"fullname": {"Grace Hopper"},
		"email":    {"grace@example.com"},
		"password": {"cobol1"},
	}, false)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	assertContains(t, rec.Body.String(), "Email already registered")
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/logout", url.Values{}, true)
	assertRedirect(t, rec, "/")

	c := cookie(rec, "access_token")
	if c == nil || c.MaxAge >= 0 {
		t.Errorf("access_token not cleared: %+v", c)
	}
}

func TestRootRedirectsToAdmin(t *testing.T) {
	env := newTestEnv(t)
	assertRedirect(t, env.get(t, "/", true), "/admin")
}
