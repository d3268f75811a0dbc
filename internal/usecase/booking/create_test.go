package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

var pkt = time.FixedZone("PKT", 5*60*60)

type harness struct {
	uc       *CreateBooking
	repo     *memRepo
	notifier *recordingNotifier
	audit    *recordingAudit
}

func newHarness(t *testing.T, catalog domain.Catalog, notifier notification.Dispatcher) *harness {
	t.Helper()

	v, err := domain.NewValidator(domain.ValidatorConfig{
		PhonePattern:     `^(\+92|92|0)?3\d{9}$`,
		PhoneCountryCode: "92",
		Location:         pkt,
		Now:              func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, pkt) },
	})
	require.NoError(t, err)

	h := &harness{repo: newMemRepo(), audit: &recordingAudit{}}
	rec, ok := notifier.(*recordingNotifier)
	if ok {
		h.notifier = rec
	}

	h.uc = NewCreateBooking(v, catalog, h.repo, notifier, h.audit, ClinicInfo{
		Name:               "Vogue Clinic",
		ContactPhone:       "+92-337-1671167",
		ConfirmationPrefix: "VC",
		DefaultCapacity:    3,
	}, zap.NewNop())
	return h
}

func request(services ...string) domain.Request {
	return domain.Request{
		Name:    "Sara",
		Email:   "sara@example.com",
		Phone:   "0300 1234567",
		Service: domain.ServiceList(services),
		Date:    "2026-03-12",
		Time:    "14:00",
	}
}

func capacity(n int) *int { return &n }

func TestCreateBookingConfirmsAndNotifies(t *testing.T) {
	catalog := staticCatalog{services: []models.Service{{Code: "Veneers", Label: "Porcelain Veneers"}}}
	h := newHarness(t, catalog, &recordingNotifier{})

	out, err := h.uc.Execute(context.Background(), request("Veneers", "Teeth whitening"))
	require.NoError(t, err)

	assert.Equal(t, uint(1), out.BookingID)
	assert.Equal(t, "VC-000001", out.ConfirmationNumber)
	assert.Equal(t, "2026-03-12", out.Date)
	assert.Equal(t, "14:00", out.Time)

	stored, err := h.repo.GetBooking(context.Background(), out.BookingID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Veneers", "Teeth whitening"}, domain.ParseServices(stored.Service))

	msgs := h.notifier.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "+923001234567", msgs[0].Mobile)
	assert.Equal(t, []string{"Porcelain Veneers", "Teeth whitening"}, msgs[0].Services)
	assert.Equal(t, "2:00 PM", msgs[0].TimeLabel)
	assert.Equal(t, []string{audit.ActionBookingCreated}, h.audit.actions())
}

func TestCreateBookingValidationNeverTouchesStore(t *testing.T) {
	h := newHarness(t, staticCatalog{}, &recordingNotifier{})
	req := request("Veneers")
	req.Email = "not-an-email"

	_, err := h.uc.Execute(context.Background(), req)

	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", ve.Field)
	assert.Zero(t, h.repo.count())
	assert.Empty(t, h.notifier.sent())
}

func TestCreateBookingCapacityRejectsWholeRequest(t *testing.T) {
	catalog := staticCatalog{services: []models.Service{{Code: "Braces & Aligners", Label: "Braces & Aligners", Capacity: capacity(1)}}}
	h := newHarness(t, catalog, &recordingNotifier{})

	_, err := h.uc.Execute(context.Background(), request("Braces & Aligners"))
	require.NoError(t, err)

	_, err = h.uc.Execute(context.Background(), request("Dental X-ray", "Braces & Aligners"))
	ce, ok := domain.IsCapacity(err)
	require.True(t, ok)
	assert.Equal(t, "Braces & Aligners", ce.ServiceID)
	assert.Contains(t, err.Error(), "Braces & Aligners is fully booked")

	assert.Equal(t, 1, h.repo.count(), "no partial admission")
	assert.Len(t, h.notifier.sent(), 1)
	assert.Equal(t, []string{audit.ActionBookingCreated, audit.ActionBookingRejected}, h.audit.actions())

	out, err := h.uc.Execute(context.Background(), request("Dental X-ray"))
	require.NoError(t, err, "other services keep their own capacity in the slot")
	assert.Equal(t, "VC-000002", out.ConfirmationNumber)
	assert.Equal(t, 2, h.repo.count())
}

func TestCreateBookingStorageFailureIsFatal(t *testing.T) {
	h := newHarness(t, staticCatalog{}, &recordingNotifier{})
	h.repo.insertErr = errors.New("connection reset")

	out, err := h.uc.Execute(context.Background(), request("Veneers"))

	assert.Nil(t, out)
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Empty(t, h.notifier.sent())
	assert.Empty(t, h.audit.actions())
}

func TestCreateBookingCatalogFailureIsStorageError(t *testing.T) {
	h := newHarness(t, staticCatalog{err: errors.New("timeout")}, &recordingNotifier{})

	_, err := h.uc.Execute(context.Background(), request("Veneers"))

	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "load catalog", se.Op)
	assert.Zero(t, h.repo.count())
}

type failingChannel struct {
	name  string
	calls sync.WaitGroup
}

func (f *failingChannel) Name() string { return f.name }

func (f *failingChannel) Send(context.Context, notification.Message) error {
	defer f.calls.Done()
	return errors.New("smtp down")
}

func TestCreateBookingSucceedsWhenNotificationsFail(t *testing.T) {
	email := &failingChannel{name: "email_customer"}
	whatsapp := &failingChannel{name: "whatsapp"}
	email.calls.Add(2)
	whatsapp.calls.Add(2)

	d := notification.NewMemoryDispatcher(notification.MemoryConfig{
		Workers:   1,
		QueueSize: 4,
		Retry:     notification.RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond, Timeout: time.Second},
	}, []notification.Channel{email, whatsapp}, notification.NewLogSink(zap.NewNop()), zap.NewNop())

	h := newHarness(t, staticCatalog{}, d)

	out, err := h.uc.Execute(context.Background(), request("Veneers"))
	require.NoError(t, err)
	assert.Equal(t, "VC-000001", out.ConfirmationNumber)

	email.calls.Wait()
	whatsapp.calls.Wait()
	require.NoError(t, d.Close(context.Background()))
}

func TestCreateBookingConcurrentAdmissionsRespectCapacity(t *testing.T) {
	const capacityC = 3

	h := newHarness(t, staticCatalog{}, &recordingNotifier{})
	h.repo.readDelay = 2 * time.Millisecond

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)

	for i := 0; i < capacityC+2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request("Hydra Facial")
			req.Name = fmt.Sprintf("client-%d", i)

			_, err := h.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
				return
			}
			if _, ok := domain.IsCapacity(err); ok {
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, capacityC, admitted)
	assert.Equal(t, 2, rejected)
	assert.Equal(t, capacityC, h.repo.count())
}

func TestCreateBookingDifferentSlotsDoNotInterfere(t *testing.T) {
	catalog := staticCatalog{services: []models.Service{{Code: "Veneers", Capacity: capacity(1)}}}
	h := newHarness(t, catalog, &recordingNotifier{})

	first := request("Veneers")
	second := request("Veneers")
	second.Time = "15:00"

	_, err := h.uc.Execute(context.Background(), first)
	require.NoError(t, err)
	_, err = h.uc.Execute(context.Background(), second)
	require.NoError(t, err)
}
