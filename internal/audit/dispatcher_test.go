package audit

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (w *recordingWriter) Write(_ context.Context, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func TestDispatcherFlushesOnClose(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w, zap.NewNop())

	d.Dispatch(Event{Action: ActionBookingCreated, Entity: "booking", EntityID: UintPtr(1)})
	d.Dispatch(Event{Action: ActionBookingDeleted, Entity: "booking", EntityID: UintPtr(1)})
	require.NoError(t, d.Close(context.Background()))

	require.Len(t, w.events, 2)
	assert.Equal(t, ActionBookingCreated, w.events[0].Action)
}

func TestDispatcherSurvivesWriterErrors(t *testing.T) {
	w := &recordingWriter{err: errors.New("db down")}
	d := NewDispatcher(w, zap.NewNop())

	d.Dispatch(Event{Action: ActionServiceCreated})
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, w.events, 1)
}

func TestLoggerWritesMetadataAsJSON(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs" ("action","actor","entity","entity_id","metadata","created_at")`)).
		WithArgs(ActionServiceUpdated, "admin@vogueclinic.com", "service", 7, `{"slot":"2026-03-12 10:00"}`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err = New(db).Write(context.Background(), Event{
		Action:   ActionServiceUpdated,
		Actor:    "admin@vogueclinic.com",
		Entity:   "service",
		EntityID: UintPtr(7),
		Metadata: map[string]string{"slot": "2026-03-12 10:00"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
