package httperr

import "errors"

// Codes returned by the repositories. Handle maps the suffix to a status.
const (
	CodeBookingNotFound      = "booking_not_found"
	CodeContactNotFound      = "contact_not_found"
	CodeServiceNotFound      = "service_not_found"
	CodeServiceAlreadyExists = "service_already_exists"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
