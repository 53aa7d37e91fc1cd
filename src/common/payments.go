package common

import (
	"carebook/src/config"
	"carebook/src/db"
	"carebook/src/lib"
	"carebook/src/lib/mailer"
	"carebook/src/models"
	"carebook/src/types"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

type PaymentIntentResult struct {
	ClientSecret    string    `json:"clientSecret"`
	PaymentIntentID string    `json:"paymentIntentId"`
	BookingID       uint      `json:"bookingId"`
	PaymentID       uuid.UUID `json:"paymentId"`
}

// CreatePaymentIntent runs the pay-first flow: create the booking, then ask
// the gateway for an intent sized in minor units and persist the pending
// Payment row linked back onto the booking. A gateway failure fails the
// request but the pending booking stays behind, by contract.
func CreatePaymentIntent(userId uint, body *types.CreateBookingRequestBody) (*PaymentIntentResult, int, error) {
	booking, status, err := CreateBooking(userId, body)
	if err != nil {
		return nil, status, err
	}

	amountMinor := int64(math.Round(booking.TotalCost * 100))
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(config.PAYMENT_CURRENCY),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("bookingId", fmt.Sprint(booking.ID))
	params.AddMetadata("userId", fmt.Sprint(userId))
	params.AddMetadata("serviceName", booking.ServiceName)

	sc := lib.GetStripeClient()
	pi, err := sc.V1PaymentIntents.Create(context.Background(), params)
	if err != nil {
		log.Printf("[Stripe] Error creating PaymentIntent for Booking [%d]: %s\n", booking.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("payment gateway unavailable")
	}

	var payment models.Payment
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		payment = models.Payment{
			UserID:                userId,
			BookingID:             booking.ID,
			Amount:                booking.TotalCost,
			Currency:              config.PAYMENT_CURRENCY,
			Status:                types.PAYMENT_PENDING,
			Method:                "card",
			StripePaymentIntentID: pi.ID,
			Metadata: &types.Metadata{
				"serviceName": booking.ServiceName,
				"category":    booking.Category,
			},
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("payment_id", payment.ID).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error persisting Payment for intent [%s]: %s\n", pi.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}

	return &PaymentIntentResult{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		BookingID:       booking.ID,
		PaymentID:       payment.ID,
	}, http.StatusOK, nil
}

// ReconcileSuccess applies a payment_intent.succeeded event. Unknown intent
// ids are logged and swallowed; an already-succeeded Payment short-circuits
// so redelivery cannot double-apply.
func ReconcileSuccess(pi *stripe.PaymentIntent) error {
	var payment models.Payment
	var booking models.Booking
	changed := false
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{StripePaymentIntentID: pi.ID}).
			First(&payment).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[Stripe] No Payment found for intent [%s]. Ignoring\n", pi.ID)
				return nil
			}
			return err
		}
		if payment.Status == types.PAYMENT_SUCCEEDED {
			log.Printf("[Stripe] Payment [%s] already succeeded. Ignoring redelivery\n", payment.ID)
			return nil
		}
		now := time.Now()
		receiptURL := ""
		if pi.LatestCharge != nil {
			receiptURL = pi.LatestCharge.ReceiptURL
		}
		if err := tx.
			Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]any{
				"status":      types.PAYMENT_SUCCEEDED,
				"receipt_url": receiptURL,
				"paid_at":     now,
			}).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			First(&booking).
			Error; err != nil {
			return err
		}
		updates, ok := ApplyPaymentEvent(&booking, PAYMENT_EVENT_SUCCEEDED, now)
		if ok {
			if err := tx.
				Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Updates(updates).
				Error; err != nil {
				return err
			}
			if err := tx.
				Model(&models.User{}).
				Where("id = ?", payment.UserID).
				UpdateColumn("total_spent", gorm.Expr("total_spent + ?", payment.Amount)).
				Error; err != nil {
				return err
			}
		}
		payment.Status = types.PAYMENT_SUCCEEDED
		payment.ReceiptURL = receiptURL
		changed = true
		return nil
	})
	if err != nil {
		return err
	}
	if changed && booking.Email != "" {
		mailer.NewMailerMessage(&lib.SendMailInput{
			From:     os.Getenv("SMTP_FROM"),
			FromName: "CareBook",
			To:       []string{booking.Email},
			Subject:  fmt.Sprintf("Payment received — %s", booking.ServiceName),
			Body:     PaymentInvoiceBody(&booking, &payment),
			Html:     true,
		})
	}
	return nil
}

// ReconcileFailure marks the Payment failed and flips only the booking's
// payment axis; the lifecycle status stays wherever it was.
func ReconcileFailure(pi *stripe.PaymentIntent) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{StripePaymentIntentID: pi.ID}).
			First(&payment).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[Stripe] No Payment found for intent [%s]. Ignoring\n", pi.ID)
				return nil
			}
			return err
		}
		failureMessage := "Payment failed"
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			failureMessage = pi.LastPaymentError.Msg
		}
		if err := tx.
			Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]any{
				"status":          types.PAYMENT_FAILED,
				"failure_message": failureMessage,
			}).
			Error; err != nil {
			return err
		}
		var booking models.Booking
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			First(&booking).
			Error; err != nil {
			return err
		}
		if updates, ok := ApplyPaymentEvent(&booking, PAYMENT_EVENT_FAILED, time.Now()); ok {
			if err := tx.
				Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Updates(updates).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReconcileRefund applies a charge.refunded event: Payment to refunded and
// the booking to refunded+cancelled together, never one without the other.
func ReconcileRefund(ch *stripe.Charge) error {
	if ch.PaymentIntent == nil || ch.PaymentIntent.ID == "" {
		log.Printf("[Stripe] charge.refunded [%s] carries no intent id. Ignoring\n", ch.ID)
		return nil
	}
	refundID := ""
	if ch.Refunds != nil && len(ch.Refunds.Data) > 0 {
		refundID = ch.Refunds.Data[0].ID
	}
	return reconcileRefundByIntent(ch.PaymentIntent.ID, refundID)
}

func reconcileRefundByIntent(intentId, refundId string) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{StripePaymentIntentID: intentId}).
			First(&payment).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[Stripe] No Payment found for intent [%s]. Ignoring\n", intentId)
				return nil
			}
			return err
		}
		if payment.Status == types.PAYMENT_REFUNDED {
			log.Printf("[Stripe] Payment [%s] already refunded. Ignoring\n", payment.ID)
			return nil
		}
		now := time.Now()
		if err := tx.
			Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]any{
				"status":      types.PAYMENT_REFUNDED,
				"refund_id":   refundId,
				"refunded_at": now,
			}).
			Error; err != nil {
			return err
		}
		var booking models.Booking
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			First(&booking).
			Error; err != nil {
			return err
		}
		if updates, ok := ApplyPaymentEvent(&booking, PAYMENT_EVENT_REFUNDED, now); ok {
			if err := tx.
				Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Updates(updates).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AdminInitiateRefund issues a gateway refund for a succeeded Payment and
// applies the refund cascade synchronously. The webhook that follows hits
// the idempotency guard and no-ops.
func AdminInitiateRefund(paymentId uuid.UUID, reason string) (*models.Payment, int, error) {
	var payment models.Payment
	db := db.GetDb()
	if err := db.
		Model(&models.Payment{}).
		Where("id = ?", paymentId).
		First(&payment).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, errors.New("payment not found")
		}
		return nil, http.StatusInternalServerError, err
	}
	if payment.Status != types.PAYMENT_SUCCEEDED {
		return nil, http.StatusBadRequest, fmt.Errorf("Cannot refund %s payment", payment.Status)
	}

	params := &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(payment.StripePaymentIntentID),
	}
	if reason != "" {
		params.AddMetadata("reason", reason)
	}
	sc := lib.GetStripeClient()
	refund, err := sc.V1Refunds.Create(context.Background(), params)
	if err != nil {
		log.Printf("[Stripe] Error creating Refund for Payment [%s]: %s\n", payment.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("payment gateway unavailable")
	}
	if err := reconcileRefundByIntent(payment.StripePaymentIntentID, refund.ID); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if err := db.Model(&models.Payment{}).Where("id = ?", payment.ID).First(&payment).Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &payment, http.StatusOK, nil
}

func PaymentInvoiceBody(booking *models.Booking, payment *models.Payment) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your payment of BDT %.2f for <b>%s</b>.</p>
		<p>Your booking #%d is now confirmed.</p>
		<p>Receipt: %s</p>
	`, booking.Name, payment.Amount, booking.ServiceName, booking.ID, payment.ReceiptURL)
}
