package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config holds the connection settings for the shared calendar lock.
// Timeout bounds dialing, reads, writes and the startup ping.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Connect builds a client for cfg and refuses to return it until Redis
// answers a ping, so a misconfigured lock fails at boot rather than on the
// first booking.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	t := cfg.timeout()
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  t,
		ReadTimeout:  t,
		WriteTimeout: t,
	})

	pingCtx, cancel := context.WithTimeout(ctx, t)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
