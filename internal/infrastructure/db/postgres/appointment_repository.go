package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

const foreignKeyViolation = "23503"

// AppointmentRepository implements ports.AppointmentRepository backed by PostgreSQL.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, user_id, scheduled_at, service, created_at`

// Create inserts a. An unknown user_id maps to ErrUserNotFound.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, user_id, scheduled_at, service, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.UserID, a.ScheduledAt.UTC(), a.Service, a.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// FindByID reports malformed ids as ErrNotFound, same as unknown ones.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, aid.String())
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 ORDER BY scheduled_at`, userID)
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY scheduled_at`)
}

// ExistsBetween reports whether an appointment lies strictly between from and to.
func (r *AppointmentRepository) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE scheduled_at > $1 AND scheduled_at < $2
		)`, from.UTC(), to.UTC(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check window: %w", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	out := []domain.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := row.Scan(&a.ID, &a.UserID, &a.ScheduledAt, &a.Service, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.ScheduledAt = a.ScheduledAt.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
