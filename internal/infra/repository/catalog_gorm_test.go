package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const insertServiceSQL = `INSERT INTO "services" ("code","label","description","category","duration","image","capacity","active","created_at","updated_at")`

func TestCreateServiceWritesInactiveFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertServiceSQL)).
		WithArgs("Gum Surgery", "Gum Surgery", "", models.CategoryDental, "", "", nil, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(19))
	mock.ExpectCommit()

	s := &models.Service{Code: "Gum Surgery", Label: "Gum Surgery", Category: models.CategoryDental}
	require.NoError(t, repo.CreateService(context.Background(), s))

	assert.Equal(t, uint(19), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceDuplicateCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertServiceSQL)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateService(context.Background(), &models.Service{Code: "Veneers", Label: "Veneers", Category: models.CategoryDental, Active: true})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceAlreadyExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}
