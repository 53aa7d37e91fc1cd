package common

import (
	"carebook/src/models"
	"carebook/src/types"
	"time"
)

type PaymentEvent string

const (
	PAYMENT_EVENT_SUCCEEDED PaymentEvent = "succeeded"
	PAYMENT_EVENT_FAILED    PaymentEvent = "failed"
	PAYMENT_EVENT_REFUNDED  PaymentEvent = "refunded"
)

// ApplyPaymentEvent maps a payment outcome onto the booking's two status
// axes. It returns the column updates to persist and false when the booking
// already carries the target state, so replayed webhook deliveries and the
// admin-refund/webhook-refund race collapse into no-ops.
//
// Cascade table:
//
//	succeeded -> status=confirmed, payment_status=paid
//	failed    -> payment_status=failed (lifecycle status untouched)
//	refunded  -> payment_status=refunded AND status=cancelled, always together
func ApplyPaymentEvent(booking *models.Booking, event PaymentEvent, now time.Time) (map[string]any, bool) {
	switch event {
	case PAYMENT_EVENT_SUCCEEDED:
		if booking.PaymentStatus == types.BOOKING_PAYMENT_PAID {
			return nil, false
		}
		return map[string]any{
			"status":         types.BOOKING_CONFIRMED,
			"payment_status": types.BOOKING_PAYMENT_PAID,
		}, true
	case PAYMENT_EVENT_FAILED:
		if booking.PaymentStatus == types.BOOKING_PAYMENT_FAILED {
			return nil, false
		}
		return map[string]any{
			"payment_status": types.BOOKING_PAYMENT_FAILED,
		}, true
	case PAYMENT_EVENT_REFUNDED:
		if booking.PaymentStatus == types.BOOKING_PAYMENT_REFUNDED && booking.Status == types.BOOKING_CANCELLED {
			return nil, false
		}
		updates := map[string]any{
			"status":         types.BOOKING_CANCELLED,
			"payment_status": types.BOOKING_PAYMENT_REFUNDED,
		}
		if booking.CancelledAt == nil {
			updates["cancelled_at"] = now
		}
		if booking.CancellationReason == "" {
			updates["cancellation_reason"] = "Payment refunded"
		}
		return updates, true
	}
	return nil, false
}
