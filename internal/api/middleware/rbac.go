package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/flash"
)

// RequireAdmin lets admins through. Anonymous requests go to the login page;
// signed-in non-admins are sent back to their dashboard with a flash.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Identity(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if !user.IsAdmin {
				return flash.Redirect(c, "/dashboard", flash.Error, "Acesso negado.")
			}
			return next(c)
		}
	}
}
