package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/core/domain"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			if name != "Ana" || email != "ana@x.com" || password != "pw123" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	form := url.Values{"name": {"Ana"}, "email": {"ana@x.com"}, "password": {"pw123"}}
	c, rec := formContext(e, http.MethodPost, "/cadastro", form, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if flashCookie(rec) == nil {
		t.Fatalf("expected success flash")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub, false)

	form := url.Values{"name": {"Ana"}, "email": {"ana@x.com"}, "password": {"pw123"}}
	c, rec := formContext(e, http.MethodPost, "/cadastro", form, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/cadastro" {
		t.Fatalf("expected 303 back to /cadastro, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if flashCookie(rec) == nil {
		t.Fatalf("expected error flash")
	}
}

func TestAuthHandler_Register_PasswordTooLong(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrPasswordTooLong
		},
	}
	h := NewAuthHandler(stub, false)

	form := url.Values{"name": {"Ana"}, "email": {"ana@x.com"}, "password": {strings.Repeat("é", 40)}}
	c, rec := formContext(e, http.MethodPost, "/cadastro", form, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/cadastro" {
		t.Fatalf("expected 303 back to /cadastro, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if flashCookie(rec) == nil {
		t.Fatalf("expected error flash")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called for invalid input")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false)

	form := url.Values{"name": {"Ana"}, "email": {"not-an-email"}, "password": {"pw123"}}
	c, rec := formContext(e, http.MethodPost, "/cadastro", form, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/cadastro" {
		t.Fatalf("expected redirect to /cadastro, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, true)

	form := url.Values{"email": {"ana@x.com"}, "password": {"pw123"}}
	c, rec := formContext(e, http.MethodPost, "/login", form, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected 303 to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	if session == nil || session.Value != "token-u1" {
		t.Fatalf("expected session cookie, got %+v", session)
	}
	if !session.HttpOnly || !session.Secure {
		t.Fatalf("session cookie must be HttpOnly and Secure: %+v", session)
	}
}

func TestAuthHandler_Login_UsernameField(t *testing.T) {
	e := newEcho()
	var gotEmail string
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, email, _ string) (*domain.User, error) {
			gotEmail = email
			return &domain.User{ID: "u1"}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	form := url.Values{"username": {"ana@x.com"}, "password": {"pw123"}}
	c, _ := formContext(e, http.MethodPost, "/login", form, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotEmail != "ana@x.com" {
		t.Fatalf("expected username to be used as email, got %q", gotEmail)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false)

	form := url.Values{"email": {"ana@x.com"}, "password": {"wrong"}}
	c, rec := formContext(e, http.MethodPost, "/login", form, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dados de login inválidos.") || !strings.Contains(body, `action="/login"`) {
		t.Fatalf("expected login page with error flash, got %s", body)
	}
}

func TestAuthHandler_Home(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := formContext(e, http.MethodGet, "/", nil, nil)
	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Fatalf("expected login page, got %d", rec.Code)
	}

	c, rec = formContext(e, http.MethodGet, "/", nil, &domain.User{ID: "u1", Name: "Ana"})
	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("signed-in visitors go to /dashboard, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := formContext(e, http.MethodGet, "/logout", nil, &domain.User{ID: "u1"})
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected 303 to /, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderSetCookie), "Max-Age=0") {
		t.Fatalf("expected session cookie to be cleared")
	}
}
