package domain

import (
	"errors"
	"fmt"
)

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidFormat        = errors.New("invalid date/time format, expected YYYY-MM-DD HH:MM")
	ErrOutsideBusinessHours = errors.New("outside business hours")
	ErrSlotTaken            = errors.New("time slot unavailable")
	ErrInvalidHours         = errors.New("invalid business hours")
	ErrNotFound             = errors.New("appointment not found")
	ErrAccessDenied         = errors.New("access denied")
	ErrUnauthenticated      = errors.New("authentication required")
)

// ErrPasswordTooLong is an ErrInvalidInput: callers matching either see it.
var ErrPasswordTooLong = fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, MaxPasswordBytes)
