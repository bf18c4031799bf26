package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// Runs against a real server: TEST_REDIS_ADDR=localhost:6379 go test ./...
func newTestLock(t *testing.T) *CalendarLock {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	l := NewCalendarLock(client, zerolog.Nop())
	l.key = "test:" + t.Name()
	return l
}

func TestCalendarLock_Exclusive(t *testing.T) {
	l := newTestLock(t)

	_, unlock, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, _, err := l.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while held, got %v", err)
	}

	unlock()
	unlock()

	_, unlock2, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	unlock2()
}

func TestCalendarLock_ReleaseKeepsForeignToken(t *testing.T) {
	l := newTestLock(t)
	ctx := context.Background()

	_, unlock, err := l.Lock(ctx)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	// Simulate expiry and takeover by another instance.
	if err := l.client.Set(ctx, l.key, "someone-else", time.Minute).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	unlock()

	got, err := l.client.Get(ctx, l.key).Result()
	if err != nil || got != "someone-else" {
		t.Fatalf("foreign lock was released: %q %v", got, err)
	}
	_ = l.client.Del(ctx, l.key).Err()
}

func TestCalendarLock_HeldContextEndsBeforeTTL(t *testing.T) {
	l := newTestLock(t)
	l.ttl = time.Second

	before := time.Now()
	held, unlock, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer unlock()

	deadline, ok := held.Deadline()
	if !ok {
		t.Fatal("held context must carry a deadline")
	}
	if !deadline.Before(before.Add(l.ttl)) {
		t.Fatalf("deadline %v is not before key expiry %v", deadline, before.Add(l.ttl))
	}

	unlock()
	if held.Err() == nil {
		t.Fatal("held context must end on unlock")
	}
}

func TestLeaseDeadline(t *testing.T) {
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		ttl  time.Duration
		want time.Time
	}{
		{10 * time.Second, start.Add(8 * time.Second)},
		{time.Second, start.Add(800 * time.Millisecond)},
	}
	for _, tt := range tests {
		got := leaseDeadline(start, tt.ttl)
		if !got.Equal(tt.want) {
			t.Errorf("leaseDeadline(%v) = %v, want %v", tt.ttl, got, tt.want)
		}
		if !got.Before(start.Add(tt.ttl)) {
			t.Errorf("leaseDeadline(%v) not before expiry", tt.ttl)
		}
	}
}
