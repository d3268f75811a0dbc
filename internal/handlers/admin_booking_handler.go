package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

type AdminBookingHandler struct {
	list        *ucBooking.ListBookings
	get         *ucBooking.GetBooking
	del         *ucBooking.DeleteBooking
	showDetails bool
}

func NewAdminBookingHandler(
	list *ucBooking.ListBookings,
	get *ucBooking.GetBooking,
	del *ucBooking.DeleteBooking,
	showDetails bool,
) *AdminBookingHandler {
	return &AdminBookingHandler{list: list, get: get, del: del, showDetails: showDetails}
}

func (h *AdminBookingHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}
	httpresp.List(c, list)
}

func (h *AdminBookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}
	httpresp.OK(c, b)
}

func (h *AdminBookingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.del.Execute(c.Request.Context(), id, c.GetString(middleware.ContextAdminEmail)); err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}
	httpresp.OK(c, gin.H{"message": "Booking deleted"})
}
