package models

import (
	"stays/src/types"
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	PropertyID    uuid.UUID  `gorm:"type:uuid;index" json:"property_id,omitempty"`
	UserID        uint       `json:"user_id,omitempty"`
	CheckIn       time.Time  `json:"check_in,omitempty"`
	CheckOut      time.Time  `json:"check_out,omitempty"`
	Guests        uint8      `json:"guests,omitempty"`
	Status        string     `gorm:"default:'pending'" json:"status,omitempty"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	TransactionID *uuid.UUID `gorm:"type:uuid" json:"transaction_id,omitempty"`

	Property    *Property    `gorm:"foreignKey:property_id" json:"property,omitempty"`
	User        *User        `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:transaction_id" json:"transaction,omitempty"`

	types.Timestamps
}
