package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingOutput struct {
	BookingID          uint
	ConfirmationNumber string
	Date               string
	Time               string
	Services           []string
	CreatedAt          time.Time
}

type ClinicInfo struct {
	Name               string
	ContactPhone       string
	ConfirmationPrefix string
	DefaultCapacity    int
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	validator *domain.Validator
	catalog   domain.Catalog
	repo      domain.Repository
	notifier  notification.Dispatcher
	audit     audit.Recorder
	clinic    ClinicInfo
	logger    *zap.Logger
}

func NewCreateBooking(
	validator *domain.Validator,
	catalog domain.Catalog,
	repo domain.Repository,
	notifier notification.Dispatcher,
	audit audit.Recorder,
	clinic ClinicInfo,
	logger *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		validator: validator,
		catalog:   catalog,
		repo:      repo,
		notifier:  notifier,
		audit:     audit,
		clinic:    clinic,
		logger:    logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates, admits and persists one booking. It returns a
// *ValidationError, a *CapacityError or a *StorageError; notification
// outcomes never reach the caller.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	req domain.Request,
) (*CreateBookingOutput, error) {

	// --------------------------------------------------
	// 1. Validate
	// --------------------------------------------------
	adm, err := uc.validator.Validate(req)
	if err != nil {
		uc.logger.Info("booking rejected",
			zap.String("outcome", "validation"),
			zap.Error(err),
		)
		return nil, err
	}

	log := uc.logger.With(
		zap.String("slot", adm.Slot.String()),
		zap.Strings("services", adm.Services),
	)

	// --------------------------------------------------
	// 2. Capacity table
	// --------------------------------------------------
	services, err := uc.catalog.ListServices(ctx)
	if err != nil {
		log.Error("booking failed", zap.String("outcome", "storage"), zap.Error(err))
		return nil, &domain.StorageError{Op: "load catalog", Err: err}
	}
	table := domain.NewCapacityTable(uc.clinic.DefaultCapacity, services)

	// --------------------------------------------------
	// 3. Admit + persist (serialized per slot)
	// --------------------------------------------------
	b := &models.Booking{
		Name:    adm.Name,
		Email:   adm.Email,
		Phone:   adm.Phone,
		Service: domain.JoinServices(adm.Services),
		Date:    adm.Slot.Date,
		Time:    adm.Slot.Time,
		Message: adm.Message,
	}

	err = uc.repo.AdmitBooking(ctx, adm.Slot, func(existing []models.Booking) error {
		return domain.Evaluate(adm.Services, adm.Slot, existing, table)
	}, b)
	if err != nil {
		if ce, ok := domain.IsCapacity(err); ok {
			log.Info("booking rejected",
				zap.String("outcome", "capacity"),
				zap.String("service", ce.ServiceID),
				zap.Int("capacity", ce.Capacity),
			)
			uc.audit.Dispatch(audit.Event{
				Action: audit.ActionBookingRejected,
				Entity: "booking",
				Metadata: map[string]any{
					"slot":     adm.Slot.String(),
					"service":  ce.ServiceID,
					"capacity": ce.Capacity,
				},
			})
			return nil, err
		}

		var se *domain.StorageError
		if !errors.As(err, &se) {
			err = &domain.StorageError{Op: "admit booking", Err: err}
		}
		log.Error("booking failed", zap.String("outcome", "storage"), zap.Error(err))
		return nil, err
	}

	// --------------------------------------------------
	// 4. Confirmation
	// --------------------------------------------------
	confirmation, err := domain.ConfirmationNumber(uc.clinic.ConfirmationPrefix, b.ID)
	if err != nil {
		log.Error("booking failed", zap.String("outcome", "storage"), zap.Error(err))
		return nil, &domain.StorageError{Op: "compose confirmation", Err: err}
	}

	out := &CreateBookingOutput{
		BookingID:          b.ID,
		ConfirmationNumber: confirmation,
		Date:               b.Date,
		Time:               b.Time,
		Services:           adm.Services,
		CreatedAt:          b.CreatedAt,
	}

	log.Info("booking confirmed",
		zap.String("outcome", "confirmed"),
		zap.Uint("booking_id", b.ID),
		zap.String("confirmation", confirmation),
	)

	// --------------------------------------------------
	// 5. Notifications + audit (background)
	// --------------------------------------------------
	labels := make([]string, len(adm.Services))
	for i, id := range adm.Services {
		labels[i] = table.Label(id)
	}

	uc.notifier.Dispatch(notification.Message{
		BookingID:    b.ID,
		Confirmation: confirmation,
		Name:         adm.Name,
		Email:        adm.Email,
		Phone:        adm.Phone,
		Mobile:       adm.Mobile,
		Services:     labels,
		Date:         adm.Slot.Date,
		Time:         adm.Slot.Time,
		TimeLabel:    domain.TimeSlotLabel(adm.Slot.Time),
		Note:         adm.Message,
		ClinicName:   uc.clinic.Name,
		ClinicPhone:  uc.clinic.ContactPhone,
	})

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: audit.UintPtr(b.ID),
		Metadata: map[string]any{
			"slot":         adm.Slot.String(),
			"services":     adm.Services,
			"confirmation": confirmation,
		},
	})

	return out, nil
}
