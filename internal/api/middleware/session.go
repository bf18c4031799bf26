package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "session"

const identityKey = "identity"

// SessionGate is the part of the auth service the session middleware needs.
type SessionGate interface {
	ParseSession(token string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// Session resolves the session cookie into the current user and stores it in
// the request context. Requests without a valid session pass through
// anonymously; RequireAuth decides whether that is acceptable.
func Session(gate SessionGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			userID, err := gate.ParseSession(ck.Value)
			if err != nil {
				ClearSession(c)
				return next(c)
			}

			user, err := gate.CurrentUser(c.Request().Context(), userID)
			if err != nil {
				ClearSession(c)
				return next(c)
			}

			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// Identity returns the authenticated user of this request, if any.
func Identity(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(identityKey).(*domain.User)
	return u, ok && u != nil
}

// SetIdentity attaches user to the request context.
func SetIdentity(c echo.Context, user *domain.User) {
	c.Set(identityKey, user)
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := Identity(c); !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// StartSession sets the session cookie.
func StartSession(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func ClearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
