package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

func handle(t *testing.T, err error, showDetails bool) (int, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Handle(c, err, showDetails)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleMapsErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		status, body := handle(t, &booking.ValidationError{Field: "phone", Message: "Invalid phone number"}, false)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "phone", body.Field)
		assert.Equal(t, "Invalid phone number", body.Message)
	})

	t.Run("capacity", func(t *testing.T) {
		status, body := handle(t, &booking.CapacityError{ServiceID: "Veneers", Label: "Veneers", Capacity: 3}, false)
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, body.Message, "Veneers is fully booked")
	})

	t.Run("business not found", func(t *testing.T) {
		status, body := handle(t, fmt.Errorf("get: %w", ErrBusiness("booking_not_found")), false)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "booking_not_found", body.Code)
	})

	t.Run("business conflict", func(t *testing.T) {
		status, _ := handle(t, ErrBusiness("service_already_exists"), false)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("storage hides details in production", func(t *testing.T) {
		err := &booking.StorageError{Op: "insert booking", Err: errors.New("pq: connection refused")}

		status, body := handle(t, err, false)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Empty(t, body.Details)

		_, body = handle(t, err, true)
		assert.Contains(t, body.Details, "connection refused")
	})
}
