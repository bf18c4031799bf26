package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListAdmins(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if u.IsAdmin {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *stubUserRepo) SetAdmin(_ context.Context, id string, admin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsAdmin = admin
	return nil
}

func (r *stubUserRepo) add(id, name, email string, admin bool) *domain.User {
	u := &domain.User{ID: id, Name: name, Email: email, IsAdmin: admin}
	r.mu.Lock()
	r.users[id] = cloneUser(u)
	r.mu.Unlock()
	return u
}

// stubAppointmentRepo widens the check-then-write race with an optional
// delay inside ExistsBetween.
type stubAppointmentRepo struct {
	mu         sync.Mutex
	items      []domain.Appointment
	checkDelay time.Duration
	createErr  error
}

func (r *stubAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *a)
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAppointmentRepo) ListByUser(_ context.Context, userID string) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Appointment
	for _, a := range r.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) ListAll(context.Context) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Appointment(nil), r.items...), nil
}

func (r *stubAppointmentRepo) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	r.mu.Lock()
	snapshot := append([]domain.Appointment(nil), r.items...)
	r.mu.Unlock()

	if r.checkDelay > 0 {
		select {
		case <-time.After(r.checkDelay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	for _, a := range snapshot {
		if a.ScheduledAt.After(from) && a.ScheduledAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// recordingNotifier captures published notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Publish(_ context.Context, msg domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Recipient.ID)
	}
	return out
}

var errBoom = errors.New("boom")

// leaseLock hands out holds that lapse after lease, like an expiring
// distributed lock.
type leaseLock struct {
	lease time.Duration
}

func (l leaseLock) Lock(ctx context.Context) (context.Context, func(), error) {
	held, cancel := context.WithTimeout(ctx, l.lease)
	return held, cancel, nil
}
