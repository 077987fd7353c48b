package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hold is a time-bounded reservation of seats against an event. It is
// "active" while is_expired is false, expires_at is in the future and no
// booking references it; active quantities count against availability.
type Hold struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      string    `gorm:"type:uuid;not null;index" json:"event_id"`
	Quantity     int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	PaymentToken string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"payment_token"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	IsExpired    bool      `gorm:"not null;default:false" json:"is_expired"`
	CreatedAt    time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}

func (h *Hold) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
