package ports

import (
	"context"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// UserRepository is the identity store.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateEmail when the
	// (normalised) email is already taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListAdmins returns every user with the admin flag set. Callers must not
	// cache the result: promotions take effect on the next call.
	ListAdmins(ctx context.Context) ([]domain.User, error)
	SetAdmin(ctx context.Context, id string, admin bool) error
}
