package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/flash"
	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/api/web"
	"github.com/sirpyerre/agenda/internal/core/domain"
)

// currentUser returns the identity injected by the Session middleware. Routes
// behind RequireAuth always have one; a missing identity means the route was
// wired without it.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.Identity(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}
	return u, nil
}

// newView assembles the common page data and consumes any pending flash.
func newView(c echo.Context, title string, data any) web.View {
	u, _ := middleware.Identity(c)
	return web.View{
		Title: title,
		User:  u,
		Flash: flash.Pop(c),
		Data:  data,
	}
}
