package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sendTimeout = 5 * time.Second

type Dispatcher struct {
	sender Sender
	log    *zap.Logger
	queue  chan Notification

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sender Sender, size int, log *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Notification, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, n); err != nil {
			d.log.Warn("notification not delivered",
				zap.String("event_id", n.EventID),
				zap.String("type", n.Type),
				zap.Uint("booking_id", n.BookingID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Notify(n Notification) {
	if n.EventID == "" {
		n.EventID = uuid.NewString()
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- n:
	default:
		// queue full: the booking already committed, so the notice is dropped
		d.log.Warn("notification queue full, dropping event",
			zap.String("type", n.Type),
			zap.Uint("booking_id", n.BookingID),
		)
	}
}

// Close stops accepting notifications and waits for the queue to drain.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Notifier = (*Dispatcher)(nil)
