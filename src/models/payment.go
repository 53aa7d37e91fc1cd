package models

import (
	"carebook/src/types"
	"time"

	"github.com/google/uuid"
)

// Payment mirrors one gateway payment intent, 1:1 with a Booking. The
// intent id is unique so replayed webhook deliveries land on the same row.
type Payment struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	UserID    uint `gorm:"index" json:"user_id"`
	BookingID uint `gorm:"index" json:"booking_id"`

	Amount   float64             `json:"amount"`
	Currency string              `json:"currency"`
	Status   types.PaymentStatus `gorm:"default:pending" json:"status"`
	Method   string              `json:"method,omitempty"`

	StripePaymentIntentID string `gorm:"uniqueIndex" json:"stripe_payment_intent_id"`
	ReceiptURL            string `json:"receipt_url,omitempty"`
	RefundID              string `json:"refund_id,omitempty"`
	FailureMessage        string `json:"failure_message,omitempty"`

	PaidAt     *time.Time `json:"paid_at,omitempty"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`

	Metadata *types.Metadata `gorm:"type:jsonb" json:"metadata,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`
	User    *User    `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
