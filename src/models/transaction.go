package models

import (
	"stays/src/types"

	"github.com/google/uuid"
)

// ReservationRef is a plain string, not a foreign key. The simulated
// checkout path writes references that may not resolve to a row.
type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	UserID         uint                    `gorm:"index" json:"user_id,omitempty"`
	PropertyID     *uuid.UUID              `gorm:"type:uuid" json:"property_id,omitempty"`
	ReservationRef string                  `json:"reservation_ref,omitempty"`
	Amount         float64                 `json:"amount"`
	Currency       string                  `json:"currency,omitempty"`
	Status         types.TransactionStatus `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentMethod  types.JSONB             `json:"payment_method,omitempty"`
	ReferenceID    string                  `gorm:"index" json:"reference_id,omitempty"`
	Description    string                  `json:"description,omitempty"`
	Metadata       types.JSONB             `json:"metadata,omitempty"`

	User User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
