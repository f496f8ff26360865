package models

import (
	"stays/src/types"

	"github.com/google/uuid"
)

// Property keeps both price columns. Listings written by older clients
// carry only price; the lookup prefers price_per_night and falls back.
type Property struct {
	ID            uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	HostID        uint      `json:"host_id,omitempty"`
	Title         string    `json:"title,omitempty"`
	Slug          string    `gorm:"index" json:"slug,omitempty"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location,omitempty"`
	PricePerNight float64   `json:"price_per_night,omitempty"`
	Price         float64   `json:"price,omitempty"`
	MaxGuests     uint8     `json:"max_guests,omitempty"`
	Status        string    `gorm:"default:'draft'" json:"status,omitempty"`

	Host *User `gorm:"foreignKey:host_id" json:"host,omitempty"`

	types.Timestamps
}
