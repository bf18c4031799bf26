package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is an offset from midnight with minute precision.
type TimeOfDay time.Duration

// ParseTimeOfDay parses "HH:MM" (24h clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, s)
	}
	return TimeOfDay(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

// TimeOfDayOf returns the wall-clock offset of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

func (d TimeOfDay) String() string {
	dur := time.Duration(d)
	return fmt.Sprintf("%02d:%02d", int(dur.Hours()), int(dur.Minutes())%60)
}

// BusinessHours is the daily window in which bookings are accepted.
type BusinessHours struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// DefaultBusinessHours is 08:00–18:00.
var DefaultBusinessHours = BusinessHours{
	Open:  TimeOfDay(8 * time.Hour),
	Close: TimeOfDay(18 * time.Hour),
}

// NewBusinessHours parses an "HH:MM" pair. Open must not be after Close.
func NewBusinessHours(open, close string) (BusinessHours, error) {
	o, err := ParseTimeOfDay(open)
	if err != nil {
		return BusinessHours{}, err
	}
	c, err := ParseTimeOfDay(close)
	if err != nil {
		return BusinessHours{}, err
	}
	if o > c {
		return BusinessHours{}, fmt.Errorf("%w: open %s after close %s", ErrInvalidHours, open, close)
	}
	return BusinessHours{Open: o, Close: c}, nil
}

// Contains reports whether t's time of day lies in [Open, Close], both ends inclusive.
func (h BusinessHours) Contains(t time.Time) bool {
	tod := TimeOfDayOf(t)
	return tod >= h.Open && tod <= h.Close
}

func (h BusinessHours) String() string {
	return h.Open.String() + "–" + h.Close.String()
}
