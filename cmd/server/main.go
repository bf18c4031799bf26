// Command server runs the appointment booking site.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/sirpyerre/agenda/docs"
	"github.com/sirpyerre/agenda/internal/api"
	"github.com/sirpyerre/agenda/internal/api/middleware"
	"github.com/sirpyerre/agenda/internal/core/ports"
	"github.com/sirpyerre/agenda/internal/core/service"
	"github.com/sirpyerre/agenda/internal/infrastructure/config"
	"github.com/sirpyerre/agenda/internal/infrastructure/db/memory"
	mongostore "github.com/sirpyerre/agenda/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/agenda/internal/infrastructure/db/postgres"
	redisstore "github.com/sirpyerre/agenda/internal/infrastructure/db/redis"
	ops "github.com/sirpyerre/agenda/internal/infrastructure/http"
	"github.com/sirpyerre/agenda/internal/infrastructure/http/handlers"
	"github.com/sirpyerre/agenda/internal/infrastructure/notify"
	"github.com/sirpyerre/agenda/internal/infrastructure/queue"
	"github.com/sirpyerre/agenda/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

//	@title			Agenda
//	@version		1.0
//	@description	Appointment booking site: accounts, bookings with slot separation, admin notifications.
//	@BasePath		/
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type storage struct {
	users        ports.UserRepository
	appointments ports.AppointmentRepository
	lock         ports.CalendarLocker
	checks       map[string]handlers.Check
	closers      []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "agenda",
	})

	hours, _ := cfg.Hours()
	loc, _ := cfg.Location()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	// --- Notifications: log + in-memory inbox, delivered asynchronously ---
	inbox := notify.NewInbox(cfg.Notify.InboxSize)
	fanout := service.NewFanOut(notify.NewLogSink(logger.Component("notify")), inbox)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, fanout, logger.Component("dispatcher"))
	dispatcher.Start(context.Background())
	defer dispatcher.Close()

	// --- Services ---
	authService := service.NewAuthService(store.users, cfg.Session.Secret, cfg.Session.TTL, logger.Component("auth"))
	bookingService := service.NewBookingService(
		store.appointments,
		store.users,
		store.lock,
		dispatcher,
		service.BookingConfig{Hours: hours, SlotDuration: cfg.Calendar.SlotDuration, Location: loc},
		logger.Component("booking"),
	)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	proxies, err := cfg.TrustedProxies()
	if err != nil {
		return err
	}
	limiter := middleware.NewRateLimiter(cfg.Limits.RPS, cfg.Limits.Burst)
	go limiter.RunCleanup(time.Minute, ctx.Done())

	e := api.NewRouter(api.Dependencies{
		Auth:           authService,
		Bookings:       bookingService,
		Users:          store.users,
		Inbox:          inbox,
		Limiter:        limiter,
		TrustedProxies: proxies,
		Log:            logger.Component("http"),
		SecureCookies:  cfg.IsProduction(),
	})
	ops.RegisterOps(e, store.checks)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("lock", cfg.LockDriver).
			Str("hours", hours.String()).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	s := &storage{checks: make(map[string]handlers.Check)}

	switch cfg.StoreDriver {
	case config.StoreMongo:
		ms, err := mongostore.Open(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.users, s.appointments = ms.Users, ms.Appointments
		s.checks["mongodb"] = ms.Ping
		s.closers = append(s.closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ms.Close(closeCtx)
		})
	case config.StorePostgres:
		ps, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		s.users, s.appointments = ps.Users, ps.Appointments
		s.checks["postgres"] = ps.Ping
		s.closers = append(s.closers, ps.Close)
		if cfg.LockDriver == config.LockPostgres {
			s.lock = postgres.NewAdvisoryLock(ps.Pool(), logger.Component("calendar_lock"))
		}
	default:
		mem := memory.NewStore()
		s.users, s.appointments = mem.Users(), mem.Appointments()
		log.Warn().Msg("using in-memory store, data is lost on restart")
	}

	switch cfg.LockDriver {
	case config.LockRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			s.close()
			return nil, err
		}
		s.lock = redisstore.NewCalendarLock(client, logger.Component("calendar_lock"),
			redisstore.WithKey(cfg.Redis.LockKey),
			redisstore.WithTTL(cfg.Redis.LockTTL),
		)
		s.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		s.closers = append(s.closers, func() { _ = client.Close() })
	case config.LockLocal:
		s.lock = service.NewLocalCalendarLock()
	}

	return s, nil
}
