package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

type HTTPError struct {
	Message string `json:"error"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, e HTTPError) {
	c.AbortWithStatusJSON(status, e)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, HTTPError{Code: code, Message: message})
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, HTTPError{Code: code, Message: message})
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, HTTPError{Code: code, Message: message})
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, HTTPError{Code: code, Message: message})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, HTTPError{Code: code, Message: message})
}

// --------------------------------------------------
// Error mapping
// --------------------------------------------------

// Handle writes the response for err:
//
//	*booking.ValidationError -> 400 {error, field}
//	*booking.CapacityError   -> 409 {error}
//	BusinessError            -> 404 / 409 / 400 by code
//	anything else            -> 500, details only when showDetails
func Handle(c *gin.Context, err error, showDetails bool) {
	if ve, ok := booking.IsValidation(err); ok {
		Write(c, http.StatusBadRequest, HTTPError{Message: ve.Message, Field: ve.Field})
		return
	}

	if ce, ok := booking.IsCapacity(err); ok {
		Write(c, http.StatusConflict, HTTPError{Message: ce.Error(), Code: "slot_full"})
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		Write(c, businessStatus(be.Code), HTTPError{Message: businessMessage(be.Code), Code: be.Code})
		return
	}

	e := HTTPError{Message: "Internal server error", Code: "internal_error"}
	if showDetails {
		e.Details = err.Error()
	}
	Write(c, http.StatusInternalServerError, e)
}

func businessStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_already_exists"):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

var businessMessages = map[string]string{
	CodeBookingNotFound:      "Booking not found",
	CodeContactNotFound:      "Contact not found",
	CodeServiceNotFound:      "Service not found",
	CodeServiceAlreadyExists: "A service with this name already exists",
	"invalid_category":       "Category must be Aesthetic or Dental",
	"invalid_capacity":       "Capacity must be a positive number",
}

func businessMessage(code string) string {
	if m, ok := businessMessages[code]; ok {
		return m
	}
	return strings.ReplaceAll(code, "_", " ")
}
