package ports

import (
	"context"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// AuthService is the identity and session gate consumed by the HTTP layer.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	IssueSession(user *domain.User) (string, error)
	ParseSession(token string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Promote(ctx context.Context, email string) (*domain.User, error)
}
