package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

var (
	_ ports.NotificationSink = (*LogSink)(nil)
	_ ports.NotificationSink = (*Inbox)(nil)
)

func TestLogSink_Receive(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	err := sink.Receive(context.Background(), domain.User{ID: "adm", Email: "admin@x.com"}, "New booking by Ana")
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"admin_id":"adm"`, `"admin_email":"admin@x.com"`, `"message":"New booking by Ana"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line %s missing %s", out, want)
		}
	}
}

func TestInbox_NewestFirstPerAdmin(t *testing.T) {
	inbox := NewInbox(10)
	clock := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	inbox.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	a := domain.User{ID: "a"}
	b := domain.User{ID: "b"}
	_ = inbox.Receive(context.Background(), a, "first")
	_ = inbox.Receive(context.Background(), b, "other")
	_ = inbox.Receive(context.Background(), a, "second")

	got := inbox.Messages("a")
	if len(got) != 2 || got[0].Text != "second" || got[1].Text != "first" {
		t.Fatalf("unexpected inbox %+v", got)
	}
	if !got[0].ReceivedAt.After(got[1].ReceivedAt) {
		t.Fatalf("timestamps out of order")
	}
	if len(inbox.Messages("b")) != 1 {
		t.Fatalf("admins must not share an inbox")
	}
	if len(inbox.Messages("nobody")) != 0 {
		t.Fatalf("unknown admin should have an empty inbox")
	}
}

func TestInbox_DropsOldest(t *testing.T) {
	inbox := NewInbox(3)
	admin := domain.User{ID: "a"}
	for i := 1; i <= 5; i++ {
		_ = inbox.Receive(context.Background(), admin, fmt.Sprintf("m%d", i))
	}

	got := inbox.Messages("a")
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0].Text != "m5" || got[2].Text != "m3" {
		t.Fatalf("unexpected retention %+v", got)
	}
}
