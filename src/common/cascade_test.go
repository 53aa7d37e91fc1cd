package common

import (
	"carebook/src/models"
	"carebook/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyPaymentEventSucceeded(t *testing.T) {
	now := time.Now()
	booking := &models.Booking{
		Status:        types.BOOKING_PENDING,
		PaymentStatus: types.BOOKING_PAYMENT_PENDING,
	}

	updates, ok := ApplyPaymentEvent(booking, PAYMENT_EVENT_SUCCEEDED, now)
	assert.True(t, ok)
	assert.Equal(t, types.BOOKING_CONFIRMED, updates["status"])
	assert.Equal(t, types.BOOKING_PAYMENT_PAID, updates["payment_status"])

	booking.Status = types.BOOKING_CONFIRMED
	booking.PaymentStatus = types.BOOKING_PAYMENT_PAID
	_, ok = ApplyPaymentEvent(booking, PAYMENT_EVENT_SUCCEEDED, now)
	assert.False(t, ok, "redelivery should be a no-op")
}

func TestApplyPaymentEventFailed(t *testing.T) {
	now := time.Now()
	booking := &models.Booking{
		Status:        types.BOOKING_PENDING,
		PaymentStatus: types.BOOKING_PAYMENT_PENDING,
	}

	updates, ok := ApplyPaymentEvent(booking, PAYMENT_EVENT_FAILED, now)
	assert.True(t, ok)
	assert.Equal(t, types.BOOKING_PAYMENT_FAILED, updates["payment_status"])
	assert.NotContains(t, updates, "status", "a failed payment must not move the lifecycle status")

	booking.PaymentStatus = types.BOOKING_PAYMENT_FAILED
	_, ok = ApplyPaymentEvent(booking, PAYMENT_EVENT_FAILED, now)
	assert.False(t, ok)
}

func TestApplyPaymentEventRefunded(t *testing.T) {
	now := time.Now()
	booking := &models.Booking{
		Status:        types.BOOKING_CONFIRMED,
		PaymentStatus: types.BOOKING_PAYMENT_PAID,
	}

	updates, ok := ApplyPaymentEvent(booking, PAYMENT_EVENT_REFUNDED, now)
	assert.True(t, ok)
	assert.Equal(t, types.BOOKING_CANCELLED, updates["status"])
	assert.Equal(t, types.BOOKING_PAYMENT_REFUNDED, updates["payment_status"])
	assert.Equal(t, now, updates["cancelled_at"])
	assert.Equal(t, "Payment refunded", updates["cancellation_reason"])

	booking.Status = types.BOOKING_CANCELLED
	booking.PaymentStatus = types.BOOKING_PAYMENT_REFUNDED
	_, ok = ApplyPaymentEvent(booking, PAYMENT_EVENT_REFUNDED, now)
	assert.False(t, ok, "a second refund delivery should be a no-op")
}

func TestApplyPaymentEventRefundKeepsExistingCancellation(t *testing.T) {
	cancelledAt := time.Now().Add(-time.Hour)
	booking := &models.Booking{
		Status:             types.BOOKING_CANCELLED,
		PaymentStatus:      types.BOOKING_PAYMENT_PAID,
		CancelledAt:        &cancelledAt,
		CancellationReason: "Cancelled by admin",
	}

	updates, ok := ApplyPaymentEvent(booking, PAYMENT_EVENT_REFUNDED, time.Now())
	assert.True(t, ok)
	assert.NotContains(t, updates, "cancelled_at")
	assert.NotContains(t, updates, "cancellation_reason")
	assert.Equal(t, types.BOOKING_PAYMENT_REFUNDED, updates["payment_status"])
}

func TestApplyPaymentEventUnknown(t *testing.T) {
	booking := &models.Booking{
		Status:        types.BOOKING_PENDING,
		PaymentStatus: types.BOOKING_PAYMENT_PENDING,
	}
	_, ok := ApplyPaymentEvent(booking, PaymentEvent("chargeback"), time.Now())
	assert.False(t, ok)
}
