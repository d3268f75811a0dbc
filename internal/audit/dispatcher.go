package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionBookingCreated   = "booking_created"
	ActionBookingRejected  = "booking_rejected"
	ActionBookingDeleted   = "booking_deleted"
	ActionContactCreated   = "contact_created"
	ActionContactDeleted   = "contact_deleted"
	ActionServiceCreated   = "service_created"
	ActionServiceUpdated   = "service_updated"
	ActionServiceDeleted   = "service_deleted"
	ActionAdminLogin       = "admin_login"
	ActionAdminLoginFailed = "admin_login_failed"
)

type Event struct {
	Action   string
	Actor    string
	Entity   string
	EntityID *uint
	Metadata any
}

type Writer interface {
	Write(ctx context.Context, ev Event) error
}

// Recorder accepts audit events without blocking.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	writer Writer
	logger *zap.Logger
	queue  chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(writer Writer, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.writer.Write(context.Background(), ev); err != nil {
			d.logger.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch drops the event when the queue is full; auditing never fails a
// request.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close flushes queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Dispatch(Event) {}

func UintPtr(v uint) *uint { return &v }
