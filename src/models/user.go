package models

import (
	"stays/src/types"
)

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role  string `gorm:"default:'guest'" json:"role,omitempty"`

	Properties   []Property    `gorm:"foreignKey:host_id" json:"properties,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:user_id" json:"reservations,omitempty"`

	types.Timestamps
}
