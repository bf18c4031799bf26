package service

import "context"

// LocalCalendarLock is an in-process CalendarLocker. It only protects a
// single instance; multi-instance deployments use the redis or postgres lock.
type LocalCalendarLock struct {
	sem chan struct{}
}

// NewLocalCalendarLock returns an unlocked LocalCalendarLock.
func NewLocalCalendarLock() *LocalCalendarLock {
	return &LocalCalendarLock{sem: make(chan struct{}, 1)}
}

// Lock never expires on its own, so the held context only ends with ctx or
// on unlock.
func (l *LocalCalendarLock) Lock(ctx context.Context) (context.Context, func(), error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	held, cancel := context.WithCancel(ctx)
	released := false
	return held, func() {
		if !released {
			released = true
			cancel()
			<-l.sem
		}
	}, nil
}
