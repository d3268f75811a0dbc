package dto

import "time"

type BookingListDTO struct {
	ID                 uint      `json:"id"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Services           []string  `json:"services"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	TimeLabel          string    `json:"timeLabel"`
	Message            string    `json:"message,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type SlotAvailabilityDTO struct {
	Time      string `json:"time"`
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

type ServiceDTO struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Duration    string `json:"duration,omitempty"`
	Image       string `json:"image,omitempty"`
	Capacity    int    `json:"capacity"`
}
