package domain

import "time"

// DateTimeLayout is the canonical layout for booking timestamps ("YYYY-MM-DD HH:MM").
const DateTimeLayout = "2006-01-02 15:04"

// formLayout is what an HTML datetime-local input submits.
const formLayout = "2006-01-02T15:04"

// DefaultSlotDuration is the minimum separation between two appointments.
const DefaultSlotDuration = 50 * time.Minute

// Appointment is a reservation of the single shared calendar. Appointments are
// append-only: they are never updated or cancelled.
type Appointment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Service     string    `json:"service"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParseScheduledAt parses raw in loc using DateTimeLayout. The datetime-local
// form layout is accepted as an alias.
func ParseScheduledAt(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{DateTimeLayout, formLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidFormat
}

// SlotWindow returns the open interval (from, to) in which an existing
// appointment would collide with a booking at t.
func SlotWindow(t time.Time, slot time.Duration) (from, to time.Time) {
	return t.Add(-slot), t.Add(slot)
}
