// Package memory keeps users and appointments in process memory. It backs
// STORE_DRIVER=memory for local development and the end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// Store implements both ports.UserRepository and ports.AppointmentRepository.
type Store struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	emails       map[string]string // email -> user id
	appointments map[string]domain.Appointment
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		emails:       make(map[string]string),
		appointments: make(map[string]domain.Appointment),
	}
}

// Users and Appointments return the two repository views of the store.
func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

func (s *Store) Ping(context.Context) error { return nil }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := domain.NormalizeEmail(u.Email)
	if _, taken := r.s.emails[email]; taken {
		return domain.ErrDuplicateEmail
	}
	stored := *u
	stored.Email = email
	r.s.users[stored.ID] = stored
	r.s.emails[email] = stored.ID
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) ListAdmins(context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.User
	for _, u := range r.s.users {
		if u.IsAdmin {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) SetAdmin(_ context.Context, id string, admin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsAdmin = admin
	r.s.users[id] = u
	return nil
}

type AppointmentRepository struct{ s *Store }

func (r *AppointmentRepository) Create(_ context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[a.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByUser(_ context.Context, userID string) ([]domain.Appointment, error) {
	return r.list(func(a domain.Appointment) bool { return a.UserID == userID }), nil
}

func (r *AppointmentRepository) ListAll(context.Context) ([]domain.Appointment, error) {
	return r.list(func(domain.Appointment) bool { return true }), nil
}

func (r *AppointmentRepository) ExistsBetween(_ context.Context, from, to time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.appointments {
		if a.ScheduledAt.After(from) && a.ScheduledAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepository) list(keep func(domain.Appointment) bool) []domain.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Appointment{}
	for _, a := range r.s.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}
