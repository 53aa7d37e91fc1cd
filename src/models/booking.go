package models

import (
	"carebook/src/types"
	"time"

	"github.com/google/uuid"
)

// Booking snapshots the service fields at creation time so later catalog
// edits never rewrite booking history.
type Booking struct {
	ID uint `gorm:"primarykey" json:"id"`

	UserID      uint                  `gorm:"index" json:"user_id"`
	ServiceID   uint                  `json:"service_id"`
	ServiceName string                `json:"service_name"`
	Category    types.ServiceCategory `json:"category,omitempty"`
	Rate        float64               `json:"rate,omitempty"`
	RateUnit    types.RateUnit        `json:"rate_unit,omitempty"`

	Duration     uint               `json:"duration"`
	DurationType types.DurationType `json:"duration_type"`
	BookingDate  *time.Time         `json:"booking_date,omitempty"`

	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Division string `json:"division"`
	District string `json:"district"`
	City     string `json:"city"`
	Area     string `json:"area"`
	Address  string `json:"address"`

	TotalCost     float64                    `json:"total_cost"`
	Status        types.BookingStatus        `gorm:"default:pending" json:"status"`
	PaymentStatus types.BookingPaymentStatus `gorm:"default:pending" json:"payment_status"`
	PaymentID     *uuid.UUID                 `gorm:"type:uuid" json:"payment_id,omitempty"`

	CaregiverName      string     `json:"caregiver_name,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	User    *User    `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Payment *Payment `gorm:"foreignKey:payment_id" json:"payment,omitempty"`

	types.Timestamps
}
