package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// BookingService defines the use-case operations on the calendar.
type BookingService interface {
	// Book parses candidate, validates it against business hours and the slot
	// window, persists the appointment and notifies admins.
	Book(ctx context.Context, userID, candidate, service string) (*domain.Appointment, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	// GetForUser returns domain.ErrNotFound when the appointment is missing or
	// owned by another user.
	GetForUser(ctx context.Context, userID, id string) (*domain.Appointment, error)
	ListAll(ctx context.Context) ([]domain.Appointment, error)
	Hours() domain.BusinessHours
	SlotDuration() time.Duration
	UpdateHours(open, close string) (domain.BusinessHours, error)
}
