package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/flash"
	"github.com/sirpyerre/agenda/internal/api/metrics"
	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

type BookingHandler struct {
	bookings ports.BookingService
}

// NewBookingHandler returns a BookingHandler.
func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookRequest struct {
	DateTime string `form:"datetime" json:"datetime"`
	Service  string `form:"service"  json:"service"`
}

type dashboardData struct {
	Hours        domain.BusinessHours
	Slot         time.Duration
	Appointments []domain.Appointment
}

// Dashboard lists the signed-in user's appointments.
//
// @Summary      User dashboard
// @Tags         bookings
// @Produce      html
// @Success      200
// @Success      303  "not signed in, redirect to /login"
// @Router       /dashboard [get]
func (h *BookingHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.bookings.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "dashboard.html", newView(c, "Meus agendamentos", dashboardData{
		Hours:        h.bookings.Hours(),
		Slot:         h.bookings.SlotDuration(),
		Appointments: list,
	}))
}

// Book schedules an appointment for the signed-in user.
//
// @Summary      Book an appointment
// @Tags         bookings
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        datetime  formData  string  true  "YYYY-MM-DD HH:MM"
// @Param        service   formData  string  true  "Service name"
// @Success      303  "redirect to /detalhes_agendamento/{id}"
// @Failure      303  "redirect to /dashboard with error flash"
// @Router       /agendar [post]
func (h *BookingHandler) Book(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return flash.Redirect(c, "/dashboard", flash.Error, "Formulário inválido.")
	}

	start := time.Now()
	appt, err := h.bookings.Book(c.Request().Context(), user.ID, req.DateTime, req.Service)
	result := bookingResult(err)
	metrics.BookingsTotal.WithLabelValues(result).Inc()
	metrics.BookingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		if msg, ok := bookingMessage(err); ok {
			return flash.Redirect(c, "/dashboard", flash.Error, msg)
		}
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}

	flash.Set(c, flash.Success, "Horário agendado com sucesso!")
	return c.Redirect(http.StatusSeeOther, "/detalhes_agendamento/"+appt.ID)
}

// Details shows one of the signed-in user's appointments.
//
// @Summary      Appointment details
// @Tags         bookings
// @Produce      html
// @Param        id   path      string  true  "Appointment ID"
// @Success      200
// @Failure      404  "missing or owned by someone else"
// @Router       /detalhes_agendamento/{id} [get]
func (h *BookingHandler) Details(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	appt, err := h.bookings.GetForUser(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Agendamento não encontrado.")
		}
		return err
	}

	return c.Render(http.StatusOK, "detalhes.html", newView(c, "Agendamento", appt))
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return "booked"
	case errors.Is(err, domain.ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, domain.ErrOutsideBusinessHours):
		return "outside_hours"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

// bookingMessage maps the user-correctable booking failures to a flash.
func bookingMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		return "Horário indisponível. Selecione outro.", true
	case errors.Is(err, domain.ErrOutsideBusinessHours):
		return "Fora do horário de atendimento.", true
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Formato de data inválido. Use AAAA-MM-DD HH:MM.", true
	case errors.Is(err, domain.ErrInvalidInput):
		return "Informe o serviço.", true
	}
	return "", false
}
