package ports

import "context"

// CalendarLocker serialises check-then-write sequences on the shared calendar.
// Lock blocks until the lock is held or ctx is done. The returned context is
// valid only while the hold is guaranteed: it ends on unlock, and earlier for
// locks that expire on their own. Work the lock protects must run under it.
// unlock is safe to call more than once.
type CalendarLocker interface {
	Lock(ctx context.Context) (held context.Context, unlock func(), err error)
}
