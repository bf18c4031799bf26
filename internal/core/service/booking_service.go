package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

// BookingConfig holds the calendar rules.
type BookingConfig struct {
	Hours        domain.BusinessHours
	SlotDuration time.Duration
	// Location is the calendar's wall clock; candidates are parsed and
	// business hours evaluated in it. Defaults to UTC.
	Location *time.Location
}

// BookingService is the booking orchestrator.
type BookingService struct {
	appointments ports.AppointmentRepository
	users        ports.UserRepository
	slots        *SlotChecker
	lock         ports.CalendarLocker
	notifier     ports.Notifier
	loc          *time.Location
	log          zerolog.Logger

	mu    sync.RWMutex
	hours domain.BusinessHours
}

// NewBookingService returns a BookingService. A nil lock falls back to a
// LocalCalendarLock; zero-valued cfg fields take the 08:00-18:00, 50 minute,
// UTC defaults.
func NewBookingService(
	appointments ports.AppointmentRepository,
	users ports.UserRepository,
	lock ports.CalendarLocker,
	notifier ports.Notifier,
	cfg BookingConfig,
	log zerolog.Logger,
) *BookingService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	hours := cfg.Hours
	if hours == (domain.BusinessHours{}) {
		hours = domain.DefaultBusinessHours
	}
	if lock == nil {
		lock = NewLocalCalendarLock()
	}
	return &BookingService{
		appointments: appointments,
		users:        users,
		slots:        NewSlotChecker(appointments, cfg.SlotDuration),
		lock:         lock,
		notifier:     notifier,
		loc:          loc,
		log:          log,
		hours:        hours,
	}
}

// Book runs parse → business hours → (locked) slot check + write → notify.
// Nothing after a failing step runs; notification failures are only logged.
func (s *BookingService) Book(ctx context.Context, userID, candidate, service string) (*domain.Appointment, error) {
	// 1. Parse.
	at, err := domain.ParseScheduledAt(strings.TrimSpace(candidate), s.loc)
	if err != nil {
		return nil, err
	}

	// 2. Business hours.
	if hours := s.Hours(); !hours.Contains(at) {
		return nil, fmt.Errorf("%w: %s not within %s", domain.ErrOutsideBusinessHours, at.Format("15:04"), hours)
	}

	service = strings.TrimSpace(service)
	if service == "" {
		return nil, fmt.Errorf("%w: service is required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("book: load user: %w", err)
	}

	// 3 + 4. Slot check and write under the calendar lock.
	appt, err := s.reserve(ctx, user.ID, at, service)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", appt.ID).
		Str("user_id", user.ID).
		Time("scheduled_at", appt.ScheduledAt).
		Msg("appointment booked")

	// 5. Best-effort admin notification.
	s.notifyAdmins(ctx, user, appt)

	return appt, nil
}

func (s *BookingService) reserve(ctx context.Context, userID string, at time.Time, service string) (*domain.Appointment, error) {
	held, unlock, err := s.lock.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("book: acquire calendar lock: %w", err)
	}
	defer unlock()

	// Both calls run under held: a write landing after the lock lapsed could
	// duplicate a slot another instance has just checked.
	taken, err := s.slots.HasConflict(held, at)
	if err != nil {
		return nil, fmt.Errorf("book: check slot: %w", err)
	}
	if taken {
		return nil, domain.ErrSlotTaken
	}

	appt := &domain.Appointment{
		ID:          uuid.NewString(),
		UserID:      userID,
		ScheduledAt: at.UTC(),
		Service:     service,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.appointments.Create(held, appt); err != nil {
		return nil, fmt.Errorf("book: persist: %w", err)
	}
	return s.localize(appt), nil
}

// notifyAdmins reads the admin list fresh on every booking.
func (s *BookingService) notifyAdmins(ctx context.Context, user *domain.User, appt *domain.Appointment) {
	if s.notifier == nil {
		return
	}
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("appointment_id", appt.ID).Msg("failed to list admins, booking notification skipped")
		return
	}

	msg := domain.BookingMessage(user.Name, appt.Service, appt.ScheduledAt)
	for _, admin := range admins {
		n := domain.Notification{Recipient: admin, Message: msg, CreatedAt: time.Now().UTC()}
		if err := s.notifier.Publish(ctx, n); err != nil {
			s.log.Warn().Err(err).
				Str("appointment_id", appt.ID).
				Str("admin_id", admin.ID).
				Msg("failed to notify admin")
		}
	}
}

// ListForUser returns userID's appointments in calendar order.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	list, err := s.appointments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return s.localizeAll(list), nil
}

// GetForUser returns appointment id if userID owns it, ErrNotFound otherwise.
func (s *BookingService) GetForUser(ctx context.Context, userID, id string) (*domain.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Someone else's appointment looks exactly like a missing one.
	if appt.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s.localize(appt), nil
}

// ListAll returns every appointment in calendar order.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	list, err := s.appointments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all appointments: %w", err)
	}
	return s.localizeAll(list), nil
}

// Hours returns the business hours currently enforced.
func (s *BookingService) Hours() domain.BusinessHours {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hours
}

// UpdateHours replaces the business hours for subsequent bookings. Existing
// appointments are not revalidated.
func (s *BookingService) UpdateHours(open, close string) (domain.BusinessHours, error) {
	hours, err := domain.NewBusinessHours(open, close)
	if err != nil {
		return domain.BusinessHours{}, err
	}
	s.mu.Lock()
	s.hours = hours
	s.mu.Unlock()

	s.log.Info().Str("hours", hours.String()).Msg("business hours updated")
	return hours, nil
}

// SlotDuration is the minimum separation between two appointments.
func (s *BookingService) SlotDuration() time.Duration { return s.slots.Duration() }

// Location is the calendar's wall clock.
func (s *BookingService) Location() *time.Location { return s.loc }

func (s *BookingService) localize(a *domain.Appointment) *domain.Appointment {
	out := *a
	out.ScheduledAt = a.ScheduledAt.In(s.loc)
	return &out
}

func (s *BookingService) localizeAll(list []domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, len(list))
	for i := range list {
		out[i] = *s.localize(&list[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}
