package contact

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	CreateContact(ctx context.Context, c *models.Contact) error

	ListContacts(ctx context.Context) ([]models.Contact, error)

	DeleteContact(ctx context.Context, id uint) error
}
