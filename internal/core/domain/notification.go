package domain

import (
	"fmt"
	"time"
)

// Notification is a message addressed to a single admin.
type Notification struct {
	Recipient User
	Message   string
	CreatedAt time.Time
}

// BookingMessage formats the text sent to admins after a successful booking.
func BookingMessage(userName, service string, at time.Time) string {
	return fmt.Sprintf("New booking by %s for %s at %s", userName, service, at.Format(DateTimeLayout))
}
