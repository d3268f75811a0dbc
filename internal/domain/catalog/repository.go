package catalog

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	ListServices(ctx context.Context) ([]models.Service, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	CreateService(ctx context.Context, s *models.Service) error

	UpdateService(ctx context.Context, s *models.Service) error

	DeleteService(ctx context.Context, id uint) error
}

// Invalidator drops any cached copy of the catalog.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
