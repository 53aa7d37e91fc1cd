package models

import (
	"carebook/src/types"
	"time"
)

type User struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	Name          string      `json:"name,omitempty"`
	Email         string      `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	PasswordHash  string      `json:"-"`
	Provider      string      `gorm:"default:credentials" json:"provider,omitempty"`
	Role          types.Role  `gorm:"default:user" json:"role,omitempty"`
	IsActive      bool        `gorm:"default:true" json:"is_active"`
	TotalBookings uint        `json:"total_bookings"`
	TotalSpent    float64     `json:"total_spent"`
	LastActive    *time.Time  `json:"last_active,omitempty"`
	Metadata      *types.JSONB `gorm:"type:jsonb" json:"-"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}
