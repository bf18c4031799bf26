package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// AppointmentRepository is the booking store. Writes are only issued by the
// booking service while it holds the calendar lock.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	// ListByUser returns the user's appointments ordered by ScheduledAt.
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	// ListAll returns every appointment ordered by ScheduledAt.
	ListAll(ctx context.Context) ([]domain.Appointment, error)
	// ExistsBetween reports whether any appointment is scheduled strictly
	// inside the open interval (from, to).
	ExistsBetween(ctx context.Context, from, to time.Time) (bool, error)
}
