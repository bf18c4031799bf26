package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

// AuthService implements registration, login and the session gate.
type AuthService struct {
	users      ports.UserRepository
	secret     []byte
	sessionTTL time.Duration
	log        zerolog.Logger
}

// NewAuthService returns an AuthService signing sessions with secret.
// A non-positive sessionTTL falls back to 24h.
func NewAuthService(users ports.UserRepository, secret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, secret: []byte(secret), sessionTTL: sessionTTL, log: log}
}

// Register creates a regular user. Passwords are capped at
// domain.MaxPasswordBytes bytes, not characters.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	user, err := s.newUser(name, email, password, false)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate never reveals whether the email exists: both unknown users and
// wrong passwords yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession signs a session token carrying only the user id. The admin
// flag is looked up on every request so promotions apply immediately.
func (s *AuthService) IssueSession(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseSession validates token and returns the user id it carries.
func (s *AuthService) ParseSession(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrUnauthenticated
	}
	return claims.Subject, nil
}

// CurrentUser loads the session's user. A deleted user is ErrUnauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// IsAdmin reports the stored admin flag of userID.
func (s *AuthService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// Promote sets the admin flag on the user registered under email.
func (s *AuthService) Promote(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		if err := s.users.SetAdmin(ctx, user.ID, true); err != nil {
			return nil, fmt.Errorf("promote: %w", err)
		}
		user.IsAdmin = true
		s.log.Info().Str("user_id", user.ID).Msg("user promoted to admin")
	}
	return user, nil
}

// EnsureAdmin guarantees at least one admin exists. When none does, the
// account under email is promoted, or created with password.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if len(admins) > 0 {
		return nil
	}

	email = domain.NormalizeEmail(email)
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.SetAdmin(ctx, existing.ID, true); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		s.log.Warn().Str("email", email).Msg("no admin found, promoted existing account")
		return nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("ensure admin: %w", err)
	}

	admin, err := s.newUser("Administrator", email, password, true)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.log.Warn().
		Str("email", email).
		Msg("bootstrap admin created with configured default credentials; rotate ADMIN_PASSWORD before any production use")
	return nil
}

func (s *AuthService) newUser(name, email, password string, admin bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
