package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/api/web"
	"github.com/sirpyerre/agenda/internal/core/domain"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, name, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	promoteFn      func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) IssueSession(user *domain.User) (string, error) {
	return "token-" + user.ID, nil
}

func (s *stubAuthService) ParseSession(string) (string, error) {
	return "", domain.ErrUnauthenticated
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) IsAdmin(context.Context, string) (bool, error) { return false, nil }

func (s *stubAuthService) Promote(ctx context.Context, email string) (*domain.User, error) {
	return s.promoteFn(ctx, email)
}

type stubBookingService struct {
	bookFn      func(ctx context.Context, userID, candidate, service string) (*domain.Appointment, error)
	getFn       func(ctx context.Context, userID, id string) (*domain.Appointment, error)
	list        []domain.Appointment
	all         []domain.Appointment
	hours       domain.BusinessHours
	updateHours func(open, close string) (domain.BusinessHours, error)
}

func (s *stubBookingService) Book(ctx context.Context, userID, candidate, service string) (*domain.Appointment, error) {
	return s.bookFn(ctx, userID, candidate, service)
}

func (s *stubBookingService) ListForUser(context.Context, string) ([]domain.Appointment, error) {
	return s.list, nil
}

func (s *stubBookingService) GetForUser(ctx context.Context, userID, id string) (*domain.Appointment, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubBookingService) ListAll(context.Context) ([]domain.Appointment, error) {
	return s.all, nil
}

func (s *stubBookingService) Hours() domain.BusinessHours {
	if s.hours == (domain.BusinessHours{}) {
		return domain.DefaultBusinessHours
	}
	return s.hours
}

func (s *stubBookingService) SlotDuration() time.Duration { return domain.DefaultSlotDuration }

func (s *stubBookingService) UpdateHours(open, close string) (domain.BusinessHours, error) {
	return s.updateHours(open, close)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = web.MustRenderer()
	e.Validator = NewValidator()
	return e
}

// formContext builds a request context; user may be nil for anonymous calls.
func formContext(e *echo.Echo, method, target string, form url.Values, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetIdentity(c, user)
	}
	return c, rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "flash" && ck.Value != "" {
			return ck
		}
	}
	return nil
}
