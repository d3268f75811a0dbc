package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type Stats struct {
	TotalBookings   int64 `json:"totalBookings"`
	TodayBookings   int64 `json:"todayBookings"`
	TotalContacts   int64 `json:"totalContacts"`
	PendingBookings int64 `json:"pendingBookings"`
}

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

// Collect counts bookings and contacts relative to now, which must carry
// the clinic's location. TodayBookings are rows created since local
// midnight; PendingBookings are appointments dated today or later.
func (r *StatsGormRepository) Collect(
	ctx context.Context,
	now time.Time,
) (Stats, error) {

	var s Stats
	db := r.db.WithContext(ctx)

	midnight := timezone.StartOfDay(now, now.Location())
	today := now.Format(timezone.DateLayout)

	if err := db.Model(&models.Booking{}).Count(&s.TotalBookings).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&models.Booking{}).
		Where("created_at >= ?", midnight).
		Count(&s.TodayBookings).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&models.Booking{}).
		Where("date >= ?", today).
		Count(&s.PendingBookings).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&models.Contact{}).Count(&s.TotalContacts).Error; err != nil {
		return Stats{}, err
	}
	return s, nil
}
