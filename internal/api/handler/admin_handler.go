package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/flash"
	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
	"github.com/sirpyerre/agenda/internal/infrastructure/notify"
)

// InboxReader exposes the notifications delivered to an admin.
type InboxReader interface {
	Messages(adminID string) []notify.Message
}

type AdminHandler struct {
	auth     ports.AuthService
	bookings ports.BookingService
	users    ports.UserRepository
	inbox    InboxReader
}

// NewAdminHandler returns an AdminHandler.
func NewAdminHandler(auth ports.AuthService, bookings ports.BookingService, users ports.UserRepository, inbox InboxReader) *AdminHandler {
	return &AdminHandler{auth: auth, bookings: bookings, users: users, inbox: inbox}
}

type hoursRequest struct {
	Open  string `form:"open"  json:"open"  validate:"required,datetime=15:04"`
	Close string `form:"close" json:"close" validate:"required,datetime=15:04"`
}

type promoteRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

type adminBooking struct {
	domain.Appointment
	Customer string
}

type adminData struct {
	Hours    domain.BusinessHours
	Inbox    []notify.Message
	Bookings []adminBooking
}

// Config renders the admin page: business hours, inbox and every booking.
//
// @Summary      Admin configuration page
// @Tags         admin
// @Produce      html
// @Success      200
// @Success      303  "non-admin, redirect to /dashboard with flash"
// @Router       /admin/config [get]
func (h *AdminHandler) Config(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	all, err := h.bookings.ListAll(ctx)
	if err != nil {
		return err
	}

	names := make(map[string]string)
	rows := make([]adminBooking, 0, len(all))
	for _, a := range all {
		name, ok := names[a.UserID]
		if !ok {
			name = a.UserID
			if u, err := h.users.FindByID(ctx, a.UserID); err == nil {
				name = u.Name
			}
			names[a.UserID] = name
		}
		rows = append(rows, adminBooking{Appointment: a, Customer: name})
	}

	var inbox []notify.Message
	if h.inbox != nil {
		inbox = h.inbox.Messages(admin.ID)
	}

	return c.Render(http.StatusOK, "admin.html", newView(c, "Configuração", adminData{
		Hours:    h.bookings.Hours(),
		Inbox:    inbox,
		Bookings: rows,
	}))
}

// Configure updates the business hours.
//
// @Summary      Update business hours
// @Tags         admin
// @Accept       x-www-form-urlencoded
// @Param        open   formData  string  true  "HH:MM"
// @Param        close  formData  string  true  "HH:MM"
// @Success      303  "redirect to /admin/config with flash"
// @Router       /configurar [post]
func (h *AdminHandler) Configure(c echo.Context) error {
	var req hoursRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return flash.Redirect(c, "/admin/config", flash.Error, "Horário inválido: "+err.Error())
	}

	hours, err := h.bookings.UpdateHours(req.Open, req.Close)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidHours) {
			return flash.Redirect(c, "/admin/config", flash.Error, "Horário inválido: abertura deve ser antes do fechamento.")
		}
		return err
	}
	return flash.Redirect(c, "/admin/config", flash.Success, "Horário atualizado para "+hours.String()+".")
}

// Promote grants the admin flag to an existing user.
//
// @Summary      Promote a user to admin
// @Tags         admin
// @Accept       x-www-form-urlencoded
// @Param        email  formData  string  true  "E-mail of the user"
// @Success      303  "redirect to /admin/config with flash"
// @Router       /admin/promover [post]
func (h *AdminHandler) Promote(c echo.Context) error {
	var req promoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return flash.Redirect(c, "/admin/config", flash.Error, err.Error())
	}

	user, err := h.auth.Promote(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return flash.Redirect(c, "/admin/config", flash.Error, "Usuário não encontrado.")
		}
		return err
	}
	return flash.Redirect(c, "/admin/config", flash.Success, user.Name+" agora é administrador.")
}
