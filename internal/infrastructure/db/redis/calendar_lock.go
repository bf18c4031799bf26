package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	calendarLockKey = "agenda:lock:calendar"
	lockTTL         = 10 * time.Second
	retryInterval   = 25 * time.Millisecond
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CalendarLock is a ports.CalendarLocker shared by every instance pointing at
// the same Redis. The key expires after lockTTL in case a holder dies.
type CalendarLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    zerolog.Logger
}

// LockOption tunes a CalendarLock.
type LockOption func(*CalendarLock)

// WithKey overrides the lock key, for deployments sharing one Redis database.
func WithKey(key string) LockOption {
	return func(l *CalendarLock) {
		if key != "" {
			l.key = key
		}
	}
}

// WithTTL overrides how long a dead holder can block the calendar.
func WithTTL(ttl time.Duration) LockOption {
	return func(l *CalendarLock) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// NewCalendarLock returns a lock on the shared calendar key.
func NewCalendarLock(client *redis.Client, log zerolog.Logger, opts ...LockOption) *CalendarLock {
	l := &CalendarLock{client: client, key: calendarLockKey, ttl: lockTTL, log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock polls SET NX until it wins or ctx is done. The key expires on its own,
// so the held context carries a deadline a safety margin before the TTL,
// measured from just before the winning SET.
func (l *CalendarLock) Lock(ctx context.Context) (context.Context, func(), error) {
	token := uuid.NewString()
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		attempt := time.Now()
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, nil, fmt.Errorf("redis lock: %w", err)
		}
		if ok {
			held, cancel := context.WithDeadline(ctx, leaseDeadline(attempt, l.ttl))
			release := l.releaser(token)
			return held, func() {
				cancel()
				release()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// leaseDeadline is when work under a lock set at start with ttl must stop.
// A fifth of the TTL is kept back for clock drift and the in-flight call.
func leaseDeadline(start time.Time, ttl time.Duration) time.Time {
	return start.Add(ttl - ttl/5)
}

func (l *CalendarLock) releaser(token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Release with a fresh context: the request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			l.log.Warn().Err(err).Msg("failed to release calendar lock, it will expire")
		}
	}
}
