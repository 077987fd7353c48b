package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is the permanent conversion of a hold. The unique index on hold_id
// is the structural guarantee that a hold can be booked at most once.
type Booking struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	HoldID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_hold" json:"hold_id"`
	PaymentToken string    `gorm:"type:varchar(255);not null" json:"payment_token"`
	CreatedAt    time.Time `json:"created_at"`

	Hold *Hold `gorm:"foreignKey:HoldID;constraint:OnDelete:CASCADE" json:"hold,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
