package booking

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

// memRepo serializes admissions per slot the way the advisory lock does.
type memRepo struct {
	mu       sync.Mutex
	slots    map[string]*sync.Mutex
	bookings []models.Booking
	nextID   uint

	insertErr error
	readDelay time.Duration
}

func newMemRepo() *memRepo {
	return &memRepo{slots: map[string]*sync.Mutex{}}
}

func (r *memRepo) slotLock(s domain.Slot) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.slots[s.Key()]
	if !ok {
		l = &sync.Mutex{}
		r.slots[s.Key()] = l
	}
	return l
}

func (r *memRepo) AdmitBooking(_ context.Context, slot domain.Slot, admit domain.AdmitFunc, b *models.Booking) error {
	l := r.slotLock(slot)
	l.Lock()
	defer l.Unlock()

	r.mu.Lock()
	var existing []models.Booking
	for _, e := range r.bookings {
		if slot.Contains(e.Date, e.Time) {
			existing = append(existing, e)
		}
	}
	r.mu.Unlock()

	time.Sleep(r.readDelay)

	if err := admit(existing); err != nil {
		return err
	}
	if r.insertErr != nil {
		return &domain.StorageError{Op: "insert booking", Err: r.insertErr}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *memRepo) ListBookingsForDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListBookings(context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, len(r.bookings))
	for i := range r.bookings {
		out[len(r.bookings)-1-i] = r.bookings[i]
	}
	return out, nil
}

func (r *memRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *memRepo) DeleteBooking(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("booking_not_found")
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type staticCatalog struct {
	services []models.Service
	err      error
}

func (c staticCatalog) ListServices(context.Context) ([]models.Service, error) {
	return c.services, c.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (n *recordingNotifier) Dispatch(m notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, m)
}

func (n *recordingNotifier) Close(context.Context) error { return nil }

func (n *recordingNotifier) sent() []notification.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Message(nil), n.msgs...)
}

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
