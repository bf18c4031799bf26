// Package notify holds the in-process notification sinks.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/agenda/internal/core/domain"
)

// LogSink writes each admin notification as a structured log line.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink returns a sink writing each notification as a log line.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

// Receive logs message for recipient. It never fails.
func (s *LogSink) Receive(_ context.Context, recipient domain.User, message string) error {
	s.log.Info().
		Str("admin_id", recipient.ID).
		Str("admin_email", recipient.Email).
		Msg(message)
	return nil
}
