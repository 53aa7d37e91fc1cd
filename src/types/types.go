package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type Role string

const (
	ROLE_USER  Role = "user"
	ROLE_ADMIN Role = "admin"
)

type ServiceCategory string

const (
	CATEGORY_BABY_CARE    ServiceCategory = "Baby Care"
	CATEGORY_ELDERLY_CARE ServiceCategory = "Elderly Care"
	CATEGORY_SPECIAL_CARE ServiceCategory = "Special Care"
)

type RateUnit string

const (
	RATE_PER_HOUR RateUnit = "hour"
	RATE_PER_DAY  RateUnit = "day"
)

type DurationType string

const (
	DURATION_HOURS DurationType = "hours"
	DURATION_DAYS  DurationType = "days"
)

// Booking lifecycle. pending may move to confirmed (payment success or
// admin) or cancelled (self-cancel, admin, refund, expiry sweep); confirmed
// moves on through in_progress/completed at the admin's hand. completed and
// cancelled are terminal. Only the self-cancel path enforces the edge.
type BookingStatus string

const (
	BOOKING_PENDING     BookingStatus = "pending"
	BOOKING_CONFIRMED   BookingStatus = "confirmed"
	BOOKING_IN_PROGRESS BookingStatus = "in_progress"
	BOOKING_COMPLETED   BookingStatus = "completed"
	BOOKING_CANCELLED   BookingStatus = "cancelled"
)

// Payment axis on the booking, cascaded from the Payment record.
type BookingPaymentStatus string

const (
	BOOKING_PAYMENT_PENDING  BookingPaymentStatus = "pending"
	BOOKING_PAYMENT_PAID     BookingPaymentStatus = "paid"
	BOOKING_PAYMENT_FAILED   BookingPaymentStatus = "failed"
	BOOKING_PAYMENT_REFUNDED BookingPaymentStatus = "refunded"
)

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "pending"
	PAYMENT_SUCCEEDED PaymentStatus = "succeeded"
	PAYMENT_FAILED    PaymentStatus = "failed"
	PAYMENT_CANCELLED PaymentStatus = "cancelled"
	PAYMENT_REFUNDED  PaymentStatus = "refunded"
)

type RegisterRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,bdphone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequestBody struct {
	ServiceID    uint    `json:"serviceId" binding:"required"`
	ServiceName  string  `json:"serviceName" binding:"required"`
	Category     string  `json:"category,omitempty"`
	Name         string  `json:"name" binding:"required"`
	Phone        string  `json:"phone" binding:"required,bdphone"`
	Email        string  `json:"email,omitempty" binding:"omitempty,email"`
	Division     string  `json:"division" binding:"required"`
	District     string  `json:"district" binding:"required"`
	City         string  `json:"city" binding:"required"`
	Area         string  `json:"area" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Duration     uint    `json:"duration" binding:"required,min=1"`
	DurationType string  `json:"durationType" binding:"required,oneof=hours days"`
	TotalCost    float64 `json:"totalCost" binding:"required"`
	BookingDate  string  `json:"bookingDate,omitempty" binding:"omitempty,bookabledate"`
	Notes        string  `json:"notes,omitempty"`
}

type CancelBookingRequestBody struct {
	Reason string `json:"reason,omitempty"`
}

type CreatePaymentIntentRequestBody struct {
	BookingData CreateBookingRequestBody `json:"bookingData" binding:"required"`
}

type AdminRefundRequestBody struct {
	PaymentID string `json:"paymentId" binding:"required"`
	Reason    string `json:"reason,omitempty"`
}

type AdminUpdateBookingRequestBody struct {
	Status             *BookingStatus        `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	PaymentStatus      *BookingPaymentStatus `json:"paymentStatus,omitempty" binding:"omitempty,oneof=pending paid failed refunded"`
	CaregiverName      *string               `json:"caregiverName,omitempty"`
	Notes              *string               `json:"notes,omitempty"`
	CancellationReason *string               `json:"cancellationReason,omitempty"`
}

type CreateServiceRequestBody struct {
	Name        string          `json:"name" binding:"required"`
	Category    ServiceCategory `json:"category" binding:"required,oneof='Baby Care' 'Elderly Care' 'Special Care'"`
	Description string          `json:"description,omitempty"`
	Rate        float64         `json:"rate" binding:"required,gt=0"`
	RateUnit    RateUnit        `json:"rateUnit" binding:"required,oneof=hour day"`
	Features    JSONBArray      `json:"features,omitempty"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

type UpdateServiceRequestBody struct {
	Name        *string          `json:"name,omitempty"`
	Category    *ServiceCategory `json:"category,omitempty" binding:"omitempty,oneof='Baby Care' 'Elderly Care' 'Special Care'"`
	Description *string          `json:"description,omitempty"`
	Rate        *float64         `json:"rate,omitempty" binding:"omitempty,gt=0"`
	RateUnit    *RateUnit        `json:"rateUnit,omitempty" binding:"omitempty,oneof=hour day"`
	Features    *JSONBArray      `json:"features,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

type AdminUpdateUserRequestBody struct {
	Name     *string `json:"name,omitempty"`
	Role     *Role   `json:"role,omitempty" binding:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type UpdateProfileRequestBody struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,bdphone"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ListQueryParams struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	Category string `form:"category"`
	IsActive *bool  `form:"isActive"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
