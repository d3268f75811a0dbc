package booking

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type GetAvailability struct {
	catalog         domain.Catalog
	repo            domain.Repository
	defaultCapacity int
	loc             *time.Location
}

func NewGetAvailability(
	catalog domain.Catalog,
	repo domain.Repository,
	defaultCapacity int,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{
		catalog:         catalog,
		repo:            repo,
		defaultCapacity: defaultCapacity,
		loc:             loc,
	}
}

// Execute reports, for every enumerated time slot of date, how many more
// bookings service can take. Counting matches the admission evaluator.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	service string,
) ([]dto.SlotAvailabilityDTO, error) {

	date = strings.TrimSpace(date)
	service = strings.TrimSpace(service)

	if _, err := timezone.ParseDate(date, uc.loc); err != nil {
		return nil, &domain.ValidationError{Field: "date", Message: "Invalid date format, expected YYYY-MM-DD"}
	}
	if service == "" {
		return nil, &domain.ValidationError{Field: "service", Message: "Service is required"}
	}

	services, err := uc.catalog.ListServices(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "load catalog", Err: err}
	}
	table := domain.NewCapacityTable(uc.defaultCapacity, services)

	existing, err := uc.repo.ListBookingsForDate(ctx, date)
	if err != nil {
		return nil, &domain.StorageError{Op: "list bookings", Err: err}
	}

	out := make([]dto.SlotAvailabilityDTO, 0, len(domain.TimeSlots))
	for _, ts := range domain.TimeSlots {
		slot := domain.Slot{Date: date, Time: ts.Value}
		remaining := domain.Remaining(service, slot, existing, table)

		out = append(out, dto.SlotAvailabilityDTO{
			Time:      ts.Value,
			Label:     ts.Label,
			Capacity:  table.Capacity(service),
			Booked:    domain.CountInSlot(service, slot, existing),
			Remaining: remaining,
			Available: remaining > 0,
		})
	}
	return out, nil
}
