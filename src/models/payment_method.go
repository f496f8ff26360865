package models

import (
	"stays/src/types"

	"github.com/google/uuid"
)

// PaymentMethod stores the card number as given. Brand is not a column:
// it is derived from the number on every read.
type PaymentMethod struct {
	ID         uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id,omitempty"`
	Type       string    `gorm:"default:'card'" json:"type,omitempty"`
	CardNumber string    `json:"card_number,omitempty"`
	ExpMonth   uint8     `json:"exp_month,omitempty"`
	ExpYear    uint16    `json:"exp_year,omitempty"`
	HolderName string    `json:"holder_name,omitempty"`
	IsDefault  bool      `json:"is_default,omitempty"`

	User User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
