package models

import "time"

const (
	CategoryAesthetic = "Aesthetic"
	CategoryDental    = "Dental"
)

// Service is a catalog entry. Capacity is the number of bookings allowed for
// this service in one slot; nil means the configured default.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code        string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Label       string `gorm:"size:100;not null" json:"label"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:20;not null" json:"category"`
	Duration    string `gorm:"size:20" json:"duration"`
	Image       string `gorm:"size:255" json:"image"`
	Capacity    *int   `json:"capacity"`
	Active      bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidCategory(c string) bool {
	return c == CategoryAesthetic || c == CategoryDental
}
