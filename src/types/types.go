package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

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

type Metadata map[string]any

type PropertyStatus string

const (
	PROPERTY_DRAFT    PropertyStatus = "draft"
	PROPERTY_LISTED   PropertyStatus = "listed"
	PROPERTY_UNLISTED PropertyStatus = "unlisted"
	PROPERTY_ARCHIVED PropertyStatus = "archived"
)

type ReservationStatus string

const (
	RESERVATION_PENDING   ReservationStatus = "pending"
	RESERVATION_CONFIRMED ReservationStatus = "confirmed"
	RESERVATION_CANCELED  ReservationStatus = "canceled"
	RESERVATION_EXPIRED   ReservationStatus = "expired"
)

// TransactionStatus values are conveniences. The store accepts any string;
// callers that write other values get them back unchanged.
type TransactionStatus string

const (
	TRANSACTION_PENDING   TransactionStatus = "pending"
	TRANSACTION_COMPLETED TransactionStatus = "completed"
	TRANSACTION_FAILED    TransactionStatus = "failed"
	TRANSACTION_CANCELED  TransactionStatus = "canceled"
)

const (
	ROLE_GUEST string = "guest"
	ROLE_HOST  string = "host"
	ROLE_ADMIN string = "admin"
)

type RegisterUserRequestBody struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name,omitempty"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required"`
}

type CreatePropertyRequestBody struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description,omitempty"`
	Location      string  `json:"location" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required"`
	MaxGuests     uint8   `json:"max_guests,omitempty"`
	Publish       bool    `json:"publish,omitempty"`
}

// QuoteRequestBody keeps check_in/check_out as loose strings. Malformed
// ranges collapse to a one-night stay instead of failing validation.
type QuoteRequestBody struct {
	PropertyID string `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Guests     uint8  `json:"guests,omitempty"`
}

type CreateReservationRequestBody struct {
	PropertyID string `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required,staydate,ltdate=CheckOut" time_format:"2006-01-02"`
	CheckOut   string `json:"check_out" binding:"required,staydate" time_format:"2006-01-02"`
	Guests     uint8  `json:"guests,omitempty"`
}

type BillingAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type PaymentData struct {
	CardNumber     string          `json:"card_number,omitempty"`
	CVV            string          `json:"cvv,omitempty"`
	ExpMonth       int             `json:"exp_month,omitempty"`
	ExpYear        int             `json:"exp_year,omitempty"`
	HolderName     string          `json:"holder_name,omitempty"`
	BillingAddress *BillingAddress `json:"billing_address,omitempty"`
}

type AddPaymentMethodRequestBody struct {
	Type       string `json:"type,omitempty"`
	CardNumber string `json:"card_number" binding:"required"`
	ExpMonth   uint8  `json:"exp_month" binding:"required"`
	ExpYear    uint16 `json:"exp_year" binding:"required"`
	HolderName string `json:"holder_name" binding:"required"`
	IsDefault  bool   `json:"is_default,omitempty"`
}

type CheckoutRequestBody struct {
	PropertyID string      `json:"property_id" binding:"required"`
	CheckIn    string      `json:"check_in" binding:"required"`
	CheckOut   string      `json:"check_out" binding:"required"`
	Guests     uint8       `json:"guests,omitempty"`
	Payment    PaymentData `json:"payment,omitempty"`
}

type UpdateTransactionStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type UUIDRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type AvailabilityQueryParams struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
}

// Quote is the transient pricing breakdown. It is recomputed on every
// request and never persisted.
type Quote struct {
	Nights      int     `json:"nights"`
	BasePrice   float64 `json:"base_price"`
	Subtotal    float64 `json:"subtotal"`
	CleaningFee float64 `json:"cleaning_fee"`
	ServiceFee  float64 `json:"service_fee"`
	Taxes       float64 `json:"taxes"`
	Total       float64 `json:"total"`
	Currency    string  `json:"currency"`
}

type APIResponsePaymentMethod struct {
	ID         uuid.UUID `json:"id"`
	UserID     uint      `json:"user_id,omitempty"`
	Type       string    `json:"type,omitempty"`
	CardNumber string    `json:"card_number,omitempty"`
	Brand      string    `json:"brand,omitempty"`
	ExpMonth   uint8     `json:"exp_month,omitempty"`
	ExpYear    uint16    `json:"exp_year,omitempty"`
	HolderName string    `json:"holder_name,omitempty"`
	IsDefault  bool      `json:"is_default,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

type TransactionStatsRow struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
