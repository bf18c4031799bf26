package api

import (
	"net"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/agenda/internal/api/handler"
	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/api/web"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

// Dependencies are the services the web surface is built on.
type Dependencies struct {
	Auth     ports.AuthService
	Bookings ports.BookingService
	Users    ports.UserRepository
	Inbox    handler.InboxReader
	// Limiter throttles POST /login and POST /cadastro. Nil disables it.
	Limiter *middleware.RateLimiter
	// TrustedProxies are the peers whose X-Forwarded-For is believed. Empty
	// means the client IP is always the direct peer address.
	TrustedProxies []*net.IPNet
	Log            zerolog.Logger
	SecureCookies  bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = web.MustRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.IPExtractor = ipExtractor(deps.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.Session(deps.Auth))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.SecureCookies)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	adminHandler := handler.NewAdminHandler(deps.Auth, deps.Bookings, deps.Users, deps.Inbox)

	throttle := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if deps.Limiter != nil {
		throttle = middleware.RateLimit(deps.Limiter)
	}
	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireAdmin()

	// --- Public routes ---
	e.GET("/", authHandler.Home)
	e.GET("/login", authHandler.Home)
	e.POST("/login", authHandler.Login, throttle)
	e.GET("/cadastro", authHandler.RegisterPage)
	e.POST("/cadastro", authHandler.Register, throttle)
	e.GET("/logout", authHandler.Logout)

	// --- Signed-in routes ---
	// Route-level middleware rather than a prefix-less Group, so unknown
	// paths still answer 404 instead of a login redirect.
	e.GET("/dashboard", bookingHandler.Dashboard, requireAuth)
	e.POST("/agendar", bookingHandler.Book, requireAuth)
	e.GET("/detalhes_agendamento/:id", bookingHandler.Details, requireAuth)

	// --- Admin routes ---
	e.GET("/admin/config", adminHandler.Config, requireAdmin)
	e.POST("/configurar", adminHandler.Configure, requireAdmin)
	e.POST("/admin/promover", adminHandler.Promote, requireAdmin)

	return e
}

func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
