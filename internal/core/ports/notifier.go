package ports

import (
	"context"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// NotificationSink is one delivery channel for admin notifications.
type NotificationSink interface {
	// Name tags the sink in logs and metrics.
	Name() string
	Receive(ctx context.Context, recipient domain.User, message string) error
}

// Notifier publishes a notification to every configured sink.
type Notifier interface {
	Publish(ctx context.Context, n domain.Notification) error
}
