package booking

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// AdmitFunc decides on the rows of a slot read inside the admission
// critical section. A non-nil error aborts the write.
type AdmitFunc func(existing []models.Booking) error

type Repository interface {
	// AdmitBooking serializes all admissions of slot: the rows passed to
	// admit are current, and b is created only if admit returns nil,
	// before any other admission of the same slot can read.
	AdmitBooking(
		ctx context.Context,
		slot Slot,
		admit AdmitFunc,
		b *models.Booking,
	) error

	ListBookingsForDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	ListBookings(ctx context.Context) ([]models.Booking, error)

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	DeleteBooking(ctx context.Context, id uint) error
}

// Catalog supplies the service table used for capacity and labels.
type Catalog interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}
