package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	availability *ucBooking.GetAvailability
	showDetails  bool
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	availability *ucBooking.GetAvailability,
	showDetails bool,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		availability: availability,
		showDetails:  showDetails,
	}
}

// ======================================================
// DTOs
// ======================================================

type CreateBookingResponse struct {
	Message            string `json:"message"`
	BookingID          uint   `json:"bookingId"`
	ConfirmationNumber string `json:"confirmationNumber"`
	AppointmentDate    string `json:"appointmentDate"`
	AppointmentTime    string `json:"appointmentTime"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req domain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Write(c, http.StatusBadRequest, httperr.HTTPError{
			Message: "Invalid request body",
			Field:   "body",
		})
		return
	}

	out, err := h.create.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	httpresp.Created(c, CreateBookingResponse{
		Message:            "Booking created successfully",
		BookingID:          out.BookingID,
		ConfirmationNumber: out.ConfirmationNumber,
		AppointmentDate:    out.Date,
		AppointmentTime:    out.Time,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	service := c.Query("service")

	slots, err := h.availability.Execute(c.Request.Context(), date, service)
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}

	httpresp.OK(c, gin.H{
		"date":    date,
		"service": service,
		"slots":   slots,
	})
}
