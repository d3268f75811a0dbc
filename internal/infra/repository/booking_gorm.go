package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type BookingGormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBookingGormRepository(db *gorm.DB, logger *zap.Logger) *BookingGormRepository {
	return &BookingGormRepository{db: db, logger: logger}
}

// --------------------------------------------------
// Admission
// --------------------------------------------------

// AdmitBooking runs read, decide and insert in one transaction holding a
// transaction-scoped advisory lock on the slot. Admissions of the same slot
// queue on the lock; other slots are unaffected. A serialization failure or
// deadlock is retried once.
func (r *BookingGormRepository) AdmitBooking(
	ctx context.Context,
	slot domain.Slot,
	admit domain.AdmitFunc,
	b *models.Booking,
) error {

	err := r.admitOnce(ctx, slot, admit, b)
	if err != nil && isTransient(err) {
		r.logger.Warn("slot admission conflict, retrying",
			zap.String("slot", slot.String()),
			zap.Error(err),
		)
		b.ID = 0
		err = r.admitOnce(ctx, slot, admit, b)
	}
	return err
}

func (r *BookingGormRepository) admitOnce(
	ctx context.Context,
	slot domain.Slot,
	admit domain.AdmitFunc,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			"slot:"+slot.Key(),
		).Error; err != nil {
			return &domain.StorageError{Op: "lock slot", Err: err}
		}

		var existing []models.Booking
		if err := tx.
			Where(&models.Booking{Date: slot.Date, Time: slot.Time}).
			Find(&existing).Error; err != nil {
			return &domain.StorageError{Op: "read slot", Err: err}
		}

		if err := admit(existing); err != nil {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			return &domain.StorageError{Op: "insert booking", Err: err}
		}
		return nil
	})
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
		}
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}
	return nil
}
