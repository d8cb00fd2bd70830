package audit

import "go.uber.org/zap"

const (
	ActionBookingCreated       = "booking_created"
	ActionBookingConflict      = "booking_conflict"
	ActionBookingStatusChanged = "booking_status_changed"
	ActionScheduleUpdated      = "schedule_updated"
)

type Event struct {
	ProviderID uint
	ActorID    *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Sink persists audit events.
type Sink interface {
	Write(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Write(ev); err != nil {
			d.log.Error("audit error", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch never blocks the request path; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
