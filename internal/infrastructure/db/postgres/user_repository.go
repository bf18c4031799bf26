package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

const uniqueViolation = "23505"

// UserRepository implements ports.UserRepository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, is_admin, created_at`

// Create inserts u. A taken email maps to ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Name, domain.NormalizeEmail(u.Email), u.PasswordHash, u.IsAdmin, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID looks a user up by primary key. Ids that are not UUIDs cannot
// exist and are reported as not found without a round trip.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid.String())
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, domain.NormalizeEmail(email))
}

// ListAdmins returns every admin, oldest first.
func (r *UserRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE is_admin ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_admin = $1 WHERE id = $2`, admin, uid.String())
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) one(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
