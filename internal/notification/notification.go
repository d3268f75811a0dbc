package notification

import (
	"context"
	"strings"
)

// Message is everything a channel needs to announce one confirmed booking.
// It is also the payload of queued tasks and dead letters.
type Message struct {
	BookingID    uint     `json:"bookingId"`
	Confirmation string   `json:"confirmationNumber"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Mobile       string   `json:"mobile"`
	Services     []string `json:"services"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	TimeLabel    string   `json:"timeLabel"`
	Note         string   `json:"note,omitempty"`
	ClinicName   string   `json:"clinicName"`
	ClinicPhone  string   `json:"clinicPhone"`
}

func (m Message) ServiceList() string {
	return strings.Join(m.Services, ", ")
}

func (m Message) When() string {
	if m.TimeLabel != "" {
		return m.TimeLabel
	}
	return m.Time
}

// Channel delivers a Message to one collaborator. Name must be unique among
// the channels of a dispatcher.
type Channel interface {
	Name() string
	Send(ctx context.Context, m Message) error
}

// Dispatcher fans a Message out to every configured channel without
// blocking the caller. Delivery outcomes are never reported back.
type Dispatcher interface {
	Dispatch(m Message)
	Close(ctx context.Context) error
}

// Nop discards every message. Used when no channel is configured.
type Nop struct{}

func (Nop) Dispatch(Message) {}

func (Nop) Close(context.Context) error { return nil }
