package service

import (
	"context"
	"time"

	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

// SlotChecker detects appointments closer than the slot duration to a candidate.
type SlotChecker struct {
	repo ports.AppointmentRepository
	slot time.Duration
}

// NewSlotChecker returns a checker enforcing slot separation. A non-positive
// slot uses the 50 minute default.
func NewSlotChecker(repo ports.AppointmentRepository, slot time.Duration) *SlotChecker {
	if slot <= 0 {
		slot = domain.DefaultSlotDuration
	}
	return &SlotChecker{repo: repo, slot: slot}
}

// HasConflict is true when some existing appointment e satisfies
// e <= candidate < e+slot or candidate <= e < candidate+slot.
func (c *SlotChecker) HasConflict(ctx context.Context, candidate time.Time) (bool, error) {
	from, to := domain.SlotWindow(candidate, c.slot)
	return c.repo.ExistsBetween(ctx, from, to)
}

func (c *SlotChecker) Duration() time.Duration { return c.slot }
