package booking

import (
	"encoding/json"
	"errors"
)

// ServiceList accepts either a single string or an array of strings.
type ServiceList []string

func (l *ServiceList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = ServiceList{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return errors.New("service must be a string or an array of strings")
	}
	*l = many
	return nil
}

// Request is the booking submission as received.
type Request struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Service ServiceList `json:"service"`
	Date    string      `json:"date"`
	Time    string      `json:"time"`
	Message string      `json:"message"`
}

// Admission is a validated, normalized Request.
type Admission struct {
	Name     string
	Email    string
	Phone    string // separators stripped
	Mobile   string // E.164
	Services []string
	Slot     Slot
	Message  string
}
