package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/flash"
	"github.com/sirpyerre/agenda/internal/api/metrics"
	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

// NewAuthHandler returns an AuthHandler. secureCookie marks the session cookie Secure.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type registerRequest struct {
	Name     string `form:"name"     json:"name"     validate:"required,max=80"`
	Email    string `form:"email"    json:"email"    validate:"required,email,max=120"`
	Password string `form:"password" json:"password" validate:"required,min=4,max=72"`
}

// loginRequest accepts the address under either "email" or "username".
type loginRequest struct {
	Email    string `form:"email"    json:"email"`
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Home serves the landing page, which is the login form.
//
// @Summary      Landing page
// @Tags         auth
// @Produce      html
// @Success      200
// @Success      303  "already signed in, redirect to /dashboard"
// @Router       / [get]
func (h *AuthHandler) Home(c echo.Context) error {
	if _, ok := middleware.Identity(c); ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Render(http.StatusOK, "login.html", newView(c, "Entrar", nil))
}

// Login authenticates a user and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true  "E-mail (or use username)"
// @Param        password  formData  string  true  "Password"
// @Success      303  "session cookie set, redirect to /dashboard"
// @Failure      401  "login page with error flash"
// @Failure      429  "too many attempts"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	email := req.Email
	if email == "" {
		email = req.Username
	}

	user, err := h.authService.Authenticate(c.Request().Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			view := newView(c, "Entrar", nil)
			view.Flash = &flash.Message{Kind: flash.Error, Text: "Dados de login inválidos."}
			return c.Render(http.StatusUnauthorized, "login.html", view)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	token, err := h.authService.IssueSession(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	middleware.StartSession(c, token, h.secureCookie)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// RegisterPage serves the sign-up form.
//
// @Summary      Sign-up page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /cadastro [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "cadastro.html", newView(c, "Cadastro", nil))
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name      formData  string  true  "Display name"
// @Param        email     formData  string  true  "E-mail"
// @Param        password  formData  string  true  "Password"
// @Success      303  "redirect to /login"
// @Failure      303  "redirect to /cadastro with error flash (duplicate e-mail or invalid form)"
// @Router       /cadastro [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return flash.Redirect(c, "/cadastro", flash.Error, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return flash.Redirect(c, "/cadastro", flash.Error, "E-mail já cadastrado.")
	case errors.Is(err, domain.ErrPasswordTooLong):
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return flash.Redirect(c, "/cadastro", flash.Error, "Senha muito longa.")
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return flash.Redirect(c, "/cadastro", flash.Error, "Preencha todos os campos.")
	default:
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return flash.Redirect(c, "/login", flash.Success, "Cadastro concluído com sucesso!")
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSession(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
