package models

import "time"

// Contact is a message left through the public contact form.
type Contact struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Message string `gorm:"type:text;not null" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}
