package common

import (
	"carebook/src/config"
	"carebook/src/db"
	"carebook/src/lib"
	"carebook/src/lib/mailer"
	"carebook/src/models"
	"carebook/src/types"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"
)

// VerifyTotalCost recomputes the booking cost from the authoritative rate
// and rejects a submitted total that disagrees beyond the rounding
// tolerance. Clients still send totalCost for display parity, but the
// persisted and charged value is always the server's.
func VerifyTotalCost(service *models.Service, duration uint, durationType types.DurationType, submitted float64) (float64, error) {
	switch durationType {
	case types.DURATION_HOURS:
		if service.RateUnit != types.RATE_PER_HOUR {
			return 0, fmt.Errorf("service [%d] is billed per %s, not hourly", service.ServiceID, service.RateUnit)
		}
	case types.DURATION_DAYS:
		if service.RateUnit != types.RATE_PER_DAY {
			return 0, fmt.Errorf("service [%d] is billed per %s, not daily", service.ServiceID, service.RateUnit)
		}
	default:
		return 0, fmt.Errorf("invalid duration type %q", durationType)
	}
	expected := service.Rate * float64(duration)
	if math.Abs(submitted-expected) > config.TOTAL_COST_TOLERANCE {
		return 0, fmt.Errorf("total cost mismatch: expected %.2f, got %.2f", expected, submitted)
	}
	return expected, nil
}

// CreateBooking persists a pending/pending booking with a snapshot of the
// service fields taken at creation time. Returns the booking, an HTTP-ish
// status and an error.
func CreateBooking(userId uint, body *types.CreateBookingRequestBody) (*models.Booking, int, error) {
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.
			Model(&models.Service{}).
			Where(&models.Service{ServiceID: body.ServiceID, IsActive: true}).
			First(&service).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("unknown or inactive service [%d]", body.ServiceID)
			}
			return err
		}
		totalCost, err := VerifyTotalCost(&service, body.Duration, types.DurationType(body.DurationType), body.TotalCost)
		if err != nil {
			return err
		}
		var bookingDate *time.Time
		if body.BookingDate != "" {
			parsed, err := time.Parse(config.TIME_PARSE_FORMAT, body.BookingDate)
			if err != nil {
				return fmt.Errorf("invalid booking date: %s", err.Error())
			}
			bookingDate = &parsed
		}
		booking = models.Booking{
			UserID:        userId,
			ServiceID:     service.ServiceID,
			ServiceName:   service.Name,
			Category:      service.Category,
			Rate:          service.Rate,
			RateUnit:      service.RateUnit,
			Duration:      body.Duration,
			DurationType:  types.DurationType(body.DurationType),
			BookingDate:   bookingDate,
			Name:          body.Name,
			Phone:         body.Phone,
			Email:         body.Email,
			Division:      body.Division,
			District:      body.District,
			City:          body.City,
			Area:          body.Area,
			Address:       body.Address,
			TotalCost:     totalCost,
			Status:        types.BOOKING_PENDING,
			PaymentStatus: types.BOOKING_PAYMENT_PENDING,
			Notes:         body.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Service{}).
			Where("id = ?", service.ID).
			UpdateColumn("popularity", gorm.Expr("popularity + 1")).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.User{}).
			Where("id = ?", userId).
			UpdateColumn("total_bookings", gorm.Expr("total_bookings + 1")).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	if booking.Email != "" {
		mailer.NewMailerMessage(&lib.SendMailInput{
			From:     os.Getenv("SMTP_FROM"),
			FromName: "CareBook",
			To:       []string{booking.Email},
			Subject:  fmt.Sprintf("Booking received — %s", booking.ServiceName),
			Body:     BookingConfirmationBody(&booking),
			Html:     true,
		})
	}
	return &booking, http.StatusCreated, nil
}

// CancelBooking is the customer self-cancel path: owner-only, and legal
// only while the booking is still pending.
func CancelBooking(bookingId, userId uint, reason string) (*models.Booking, int, error) {
	var booking models.Booking
	status := http.StatusInternalServerError
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId, UserID: userId}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusNotFound
				return errors.New("booking not found")
			}
			return err
		}
		if booking.Status != types.BOOKING_PENDING {
			status = http.StatusBadRequest
			return fmt.Errorf("Cannot cancel %s booking", booking.Status)
		}
		now := time.Now()
		if reason == "" {
			reason = "Cancelled by customer"
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]any{
				"status":              types.BOOKING_CANCELLED,
				"cancelled_at":        now,
				"cancellation_reason": reason,
			}).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CANCELLED
		booking.CancelledAt = &now
		booking.CancellationReason = reason
		return nil
	})
	if err != nil {
		return nil, status, err
	}
	return &booking, http.StatusOK, nil
}

// ExpireStalePendingBookings sweeps pending bookings past the expiry window
// that never attached a payment. Runs off the scheduler.
func ExpireStalePendingBookings() {
	cutoff := time.Now().Add(-config.BOOKING_EXPIRY_HOURS * time.Hour)
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Booking{}).
			Where("status = ? AND payment_id IS NULL AND created_at < ?", types.BOOKING_PENDING, cutoff).
			Updates(map[string]any{
				"status":              types.BOOKING_CANCELLED,
				"cancelled_at":        time.Now(),
				"cancellation_reason": "Expired",
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("[sweep] Expired %d stale pending bookings\n", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.Printf("[sweep] Error expiring stale bookings: %s\n", err.Error())
	}
}

func BookingConfirmationBody(booking *models.Booking) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking for <b>%s</b> has been received and is pending confirmation.</p>
		<p>Duration: %d %s<br/>Location: %s, %s, %s<br/>Total: BDT %.2f</p>
		<p>Booking reference: #%d</p>
	`, booking.Name, booking.ServiceName, booking.Duration, booking.DurationType,
		booking.Area, booking.City, booking.Division, booking.TotalCost, booking.ID)
}
