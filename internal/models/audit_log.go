package models

import "time"

// AuditLog is one administrative or booking event. Actor is the admin email
// for actions taken behind the admin API and empty for public traffic.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action string `gorm:"size:50;not null;index" json:"action"`
	Actor  string `gorm:"size:100" json:"actor,omitempty"`

	Entity   string `gorm:"size:50;index:idx_audit_entity,priority:1" json:"entity"`
	EntityID *uint  `gorm:"index:idx_audit_entity,priority:2" json:"entityId,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
