package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type ValidatorConfig struct {
	PhonePattern     string
	PhoneCountryCode string
	Location         *time.Location
	Now              func() time.Time
}

type Validator struct {
	phone       *regexp.Regexp
	countryCode string
	loc         *time.Location
	now         func() time.Time
}

func NewValidator(cfg ValidatorConfig) (*Validator, error) {
	re, err := regexp.Compile(cfg.PhonePattern)
	if err != nil {
		return nil, fmt.Errorf("compile phone pattern: %w", err)
	}

	v := &Validator{
		phone:       re,
		countryCode: cfg.PhoneCountryCode,
		loc:         cfg.Location,
		now:         cfg.Now,
	}
	if v.loc == nil {
		v.loc = timezone.Location(timezone.DefaultTimezone)
	}
	if v.now == nil {
		v.now = time.Now
	}
	return v, nil
}

// Validate checks, in order: required fields, email shape, phone shape, date
// not in the past, time among TimeSlots. The first violation is returned as
// a *ValidationError.
func (v *Validator) Validate(r Request) (Admission, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.ToLower(strings.TrimSpace(r.Email))
	phone := validators.StripPhoneSeparators(r.Phone)
	services := normalizeServices(r.Service)
	date := strings.TrimSpace(r.Date)
	slotTime := strings.TrimSpace(r.Time)

	switch {
	case name == "":
		return Admission{}, invalid("name", "Name is required")
	case email == "":
		return Admission{}, invalid("email", "Email is required")
	case phone == "":
		return Admission{}, invalid("phone", "Phone number is required")
	case len(services) == 0:
		return Admission{}, invalid("service", "Please select at least one service")
	case date == "":
		return Admission{}, invalid("date", "Appointment date is required")
	case slotTime == "":
		return Admission{}, invalid("time", "Appointment time is required")
	}

	if !validators.IsEmailShape(email) {
		return Admission{}, invalid("email", "Invalid email address")
	}

	if !v.phone.MatchString(phone) {
		return Admission{}, invalid("phone", "Invalid phone number. Please enter a valid mobile number (e.g. 0300-1234567)")
	}

	day, err := timezone.ParseDate(date, v.loc)
	if err != nil {
		return Admission{}, invalid("date", "Invalid date format, expected YYYY-MM-DD")
	}
	if day.Before(timezone.StartOfDay(v.now(), v.loc)) {
		return Admission{}, invalid("date", "Appointment date cannot be in the past")
	}

	if !IsTimeSlot(slotTime) {
		return Admission{}, invalid("time", "Please choose one of the available appointment times")
	}

	return Admission{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Mobile:   validators.ToE164(phone, v.countryCode),
		Services: services,
		Slot:     Slot{Date: date, Time: slotTime},
		Message:  strings.TrimSpace(r.Message),
	}, nil
}
