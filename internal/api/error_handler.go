package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/api/web"
	"github.com/sirpyerre/agenda/internal/core/domain"
)

type errorPage struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends unauthenticated requests to the login page.
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders error.html, falling back to plain text.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthenticated) {
			middleware.ClearSession(c)
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		u, _ := middleware.Identity(c)
		view := web.View{Title: http.StatusText(code), User: u, Data: errorPage{Code: code, Message: msg}}
		if rerr := c.Render(code, "error.html", view); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Agendamento não encontrado."
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, "Acesso negado."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Dados de login inválidos."
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "E-mail já cadastrado."
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusConflict, "Horário indisponível."
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrOutsideBusinessHours),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidHours):
		return http.StatusUnprocessableEntity, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Erro interno."
}
