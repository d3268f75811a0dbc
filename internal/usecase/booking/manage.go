package booking

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func toListDTO(prefix string, b models.Booking) dto.BookingListDTO {
	confirmation, _ := domain.ConfirmationNumber(prefix, b.ID)
	return dto.BookingListDTO{
		ID:                 b.ID,
		ConfirmationNumber: confirmation,
		Name:               b.Name,
		Email:              b.Email,
		Phone:              b.Phone,
		Services:           domain.ParseServices(b.Service),
		Date:               b.Date,
		Time:               b.Time,
		TimeLabel:          domain.TimeSlotLabel(b.Time),
		Message:            b.Message,
		CreatedAt:          b.CreatedAt,
	}
}

// ======================================================
// LIST
// ======================================================

type ListBookings struct {
	repo   domain.Repository
	prefix string
}

func NewListBookings(repo domain.Repository, prefix string) *ListBookings {
	return &ListBookings{repo: repo, prefix: prefix}
}

// Execute lists all bookings, newest first, or the bookings of one date
// ordered by time when date is set.
func (uc *ListBookings) Execute(
	ctx context.Context,
	date string,
) ([]dto.BookingListDTO, error) {

	var (
		list []models.Booking
		err  error
	)
	if date != "" {
		list, err = uc.repo.ListBookingsForDate(ctx, date)
	} else {
		list, err = uc.repo.ListBookings(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(list))
	for _, b := range list {
		out = append(out, toListDTO(uc.prefix, b))
	}
	return out, nil
}

// ======================================================
// GET
// ======================================================

type GetBooking struct {
	repo   domain.Repository
	prefix string
}

func NewGetBooking(repo domain.Repository, prefix string) *GetBooking {
	return &GetBooking{repo: repo, prefix: prefix}
}

func (uc *GetBooking) Execute(ctx context.Context, id uint) (*dto.BookingListDTO, error) {
	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toListDTO(uc.prefix, *b)
	return &out, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteBooking struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteBooking(repo domain.Repository, audit audit.Recorder) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

// Execute removes booking id on behalf of actor, freeing its slot.
func (uc *DeleteBooking) Execute(ctx context.Context, id uint, actor string) error {
	if err := uc.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionBookingDeleted,
		Actor:    actor,
		Entity:   "booking",
		EntityID: audit.UintPtr(id),
	})
	return nil
}
