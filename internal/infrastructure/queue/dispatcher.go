package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/agenda/internal/api/metrics"
	"github.com/sirpyerre/agenda/internal/core/domain"
	"github.com/sirpyerre/agenda/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("dispatcher closed")

// Dispatcher makes notification delivery asynchronous. Notifications are
// routed to a fixed set of workers by recipient id, so each admin receives
// messages in publish order.
type Dispatcher struct {
	workers []chan domain.Notification
	next    ports.Notifier
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers that
// hand notifications to next. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, next ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		next:    next,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled
// or, after Close, once their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues n for its recipient's worker. It blocks while that
// worker's buffer is full, until ctx is done.
func (d *Dispatcher) Publish(ctx context.Context, n domain.Notification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	idx := d.shardIndex(n.Recipient.ID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting notifications and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.next.Publish(ctx, n); err != nil {
				metrics.NotificationsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("admin_id", n.Recipient.ID).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsTotal.WithLabelValues("delivered").Inc()
		}
	}
}
