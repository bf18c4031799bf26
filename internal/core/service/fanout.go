package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

// FanOut delivers each notification to every sink in order. A failing sink
// does not stop delivery to the others; all failures are joined.
type FanOut struct {
	sinks []ports.NotificationSink
}

// NewFanOut returns a FanOut delivering to sinks in order.
func NewFanOut(sinks ...ports.NotificationSink) *FanOut {
	return &FanOut{sinks: sinks}
}

// Publish hands n to every sink. A failing sink does not stop the others;
// their errors are joined.
func (f *FanOut) Publish(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Receive(ctx, n.Recipient, n.Message); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Sinks returns the sink tags in delivery order.
func (f *FanOut) Sinks() []string {
	names := make([]string, 0, len(f.sinks))
	for _, s := range f.sinks {
		names = append(names, s.Name())
	}
	return names
}
