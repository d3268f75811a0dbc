package models

import "time"

// Booking is one accepted appointment request. Service holds the requested
// service identifiers joined by the canonical delimiter (see
// domain/booking.JoinServices); it is never read with substring matching.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Service string `gorm:"size:500;not null" json:"service"`

	Date string `gorm:"column:date;size:10;not null;index:idx_bookings_slot,priority:1" json:"date"`
	Time string `gorm:"column:time;size:5;not null;index:idx_bookings_slot,priority:2" json:"time"`

	Message string `gorm:"type:text" json:"message"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
