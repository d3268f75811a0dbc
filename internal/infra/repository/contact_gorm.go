package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) CreateContact(
	ctx context.Context,
	c *models.Contact,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContactGormRepository) ListContacts(
	ctx context.Context,
) ([]models.Contact, error) {

	var list []models.Contact
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ContactGormRepository) DeleteContact(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeContactNotFound)
	}
	return nil
}
