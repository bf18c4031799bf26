package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// calendarLockID is the pg_advisory_lock key for the single shared calendar.
const calendarLockID int64 = 0x61676e64 // "agnd"

// AdvisoryLock is a ports.CalendarLocker built on a session-level advisory
// lock. The lock lives on one pooled connection, held until release.
type AdvisoryLock struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewAdvisoryLock returns a lock on the shared calendar key.
func NewAdvisoryLock(pool *pgxpool.Pool, log zerolog.Logger) *AdvisoryLock {
	return &AdvisoryLock{pool: pool, log: log}
}

// Lock holds the advisory lock until unlock. The lock does not expire while
// the connection lives, so the held context ends only with ctx or on unlock.
func (l *AdvisoryLock) Lock(ctx context.Context) (context.Context, func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("advisory lock: acquire conn: %w", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, calendarLockID); err != nil {
		conn.Release()
		return nil, nil, fmt.Errorf("advisory lock: %w", err)
	}

	held, stop := context.WithCancel(ctx)
	released := false
	return held, func() {
		if released {
			return
		}
		released = true
		stop()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, calendarLockID); err != nil {
			// A connection still holding the lock must not go back to the pool.
			l.log.Warn().Err(err).Msg("advisory unlock failed, closing connection")
			_ = conn.Conn().Close(ctx)
		}
		conn.Release()
	}, nil
}
