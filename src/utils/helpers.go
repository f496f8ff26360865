package utils

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"stays/src/config"
	"stays/src/db"
	"stays/src/models"
	"stays/src/types"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidPrice     = errors.New("property has no valid price")
	ErrNotAvailable     = errors.New("property is not available for the selected dates")
)

const (
	CLEANING_FEE_RATE = 0.05
	SERVICE_FEE_RATE  = 0.08
	TAX_RATE          = 0.12

	// How long a pending reservation holds its dates before the
	// expiry job releases them.
	RESERVATION_HOLD = 1 * time.Hour
)

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// nightsBetween collapses malformed or inverted ranges to a single
// night instead of failing. Same-day checkout counts as one night.
func nightsBetween(checkIn string, checkOut string) int {
	in, err := time.Parse(config.DATE_PARSE_FORMAT, checkIn)
	if err != nil {
		return 1
	}
	out, err := time.Parse(config.DATE_PARSE_FORMAT, checkOut)
	if err != nil {
		return 1
	}
	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

// BuildQuote applies the fee schedule to a nightly rate. Each fee is
// rounded to cents on its own; the total is never re-rounded, so it can
// carry sub-cent drift versus rounding the sum directly.
func BuildQuote(pricePerNight float64, checkIn string, checkOut string) *types.Quote {
	nights := nightsBetween(checkIn, checkOut)
	subtotal := pricePerNight * float64(nights)
	cleaningFee := Round2(subtotal * CLEANING_FEE_RATE)
	serviceFee := Round2(subtotal * SERVICE_FEE_RATE)
	taxes := Round2(subtotal * TAX_RATE)
	return &types.Quote{
		Nights:      nights,
		BasePrice:   pricePerNight,
		Subtotal:    subtotal,
		CleaningFee: cleaningFee,
		ServiceFee:  serviceFee,
		Taxes:       taxes,
		Total:       subtotal + cleaningFee + serviceFee + taxes,
		Currency:    "USD",
	}
}

func GetPropertyByID(id uuid.UUID) (*models.Property, error) {
	db := db.GetDb()
	var property models.Property
	err := db.
		Model(&models.Property{}).
		Where(&models.Property{ID: id}).
		First(&property).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

// ComputeQuote prices a stay. guests is accepted for wire compatibility
// but does not enter the fee math.
func ComputeQuote(propertyId uuid.UUID, checkIn string, checkOut string, guests uint8) (*types.Quote, error) {
	property, err := GetPropertyByID(propertyId)
	if err != nil {
		return nil, err
	}
	rate := property.PricePerNight
	if rate <= 0 {
		rate = property.Price
	}
	if rate <= 0 {
		return nil, ErrInvalidPrice
	}
	return BuildQuote(rate, checkIn, checkOut), nil
}

// GetCardBrand matches on the leading digit only. No Luhn check, no
// length check. Whitespace anywhere in the number is ignored.
func GetCardBrand(cardNumber string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cardNumber)
	if cleaned == "" {
		return "unknown"
	}
	switch cleaned[0] {
	case '4':
		return "visa"
	case '5', '2':
		return "mastercard"
	case '3':
		return "amex"
	default:
		return "unknown"
	}
}

// ValidatePaymentData is a standalone check. Callers that want it must
// invoke it themselves; AddPaymentMethod and the checkout path do not.
func ValidatePaymentData(data *types.PaymentData) bool {
	if data == nil {
		return false
	}
	if len(data.CardNumber) < 13 {
		return false
	}
	if len(data.CVV) < 3 {
		return false
	}
	if data.ExpMonth < 1 || data.ExpMonth > 12 {
		return false
	}
	if data.ExpYear < time.Now().Year() {
		return false
	}
	if len(strings.TrimSpace(data.HolderName)) < 3 {
		return false
	}
	if data.BillingAddress == nil || data.BillingAddress.Street == "" || data.BillingAddress.City == "" {
		return false
	}
	return true
}

func AddPaymentMethod(userId uint, body *types.AddPaymentMethodRequestBody) (*models.PaymentMethod, error) {
	methodType := body.Type
	if methodType == "" {
		methodType = "card"
	}
	method := models.PaymentMethod{
		UserID:     userId,
		Type:       methodType,
		CardNumber: body.CardNumber,
		ExpMonth:   body.ExpMonth,
		ExpYear:    body.ExpYear,
		HolderName: body.HolderName,
		IsDefault:  body.IsDefault,
	}
	db := db.GetDb()
	if err := db.Create(&method).Error; err != nil {
		log.Printf("Error creating PaymentMethod: %s\n", err.Error())
		return nil, err
	}
	return &method, nil
}

func GetUserPaymentMethods(userId uint) ([]models.PaymentMethod, error) {
	db := db.GetDb()
	var methods []models.PaymentMethod
	err := db.
		Model(&models.PaymentMethod{}).
		Where(&models.PaymentMethod{UserID: userId}).
		Find(&methods).
		Error
	return methods, err
}

// DeletePaymentMethod deletes only when both the id and the owning user
// match. A miss on either is reported as false, never as an error.
func DeletePaymentMethod(userId uint, methodId uuid.UUID) (bool, error) {
	db := db.GetDb()
	res := db.
		Where(&models.PaymentMethod{ID: methodId, UserID: userId}).
		Delete(&models.PaymentMethod{})
	if res.Error != nil {
		log.Printf("Error deleting PaymentMethod [%s]: %s\n", methodId.String(), res.Error.Error())
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MapPaymentMethod derives the brand from the stored number on every
// read rather than trusting a persisted brand column.
func MapPaymentMethod(m *models.PaymentMethod) *types.APIResponsePaymentMethod {
	return &types.APIResponsePaymentMethod{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       m.Type,
		CardNumber: m.CardNumber,
		Brand:      GetCardBrand(m.CardNumber),
		ExpMonth:   m.ExpMonth,
		ExpYear:    m.ExpYear,
		HolderName: m.HolderName,
		IsDefault:  m.IsDefault,
		CreatedAt:  m.CreatedAt,
	}
}

func CreateTransaction(txn *models.Transaction) error {
	db := db.GetDb()
	if err := db.Create(txn).Error; err != nil {
		log.Printf("Error creating Transaction: %s\n", err.Error())
		return err
	}
	return nil
}

// GetUserTransactions returns most recent first. This is the one read
// with a guaranteed ordering.
func GetUserTransactions(userId uint) ([]models.Transaction, error) {
	db := db.GetDb()
	var txns []models.Transaction
	err := db.
		Model(&models.Transaction{}).
		Where(&models.Transaction{UserID: userId}).
		Order("created_at DESC").
		Find(&txns).
		Error
	return txns, err
}

func GetTransactionByID(id uuid.UUID) (*models.Transaction, error) {
	db := db.GetDb()
	var txn models.Transaction
	err := db.
		Model(&models.Transaction{}).
		Where(&models.Transaction{ID: id}).
		First(&txn).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// UpdateTransactionStatus accepts any status string and returns nil when
// no transaction matches. updated_at is refreshed on every write.
func UpdateTransactionStatus(id uuid.UUID, status string) (*models.Transaction, error) {
	db := db.GetDb()
	var txn *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Transaction{}).
			Where("id = ?", id).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		var updated models.Transaction
		if err := tx.
			Model(&models.Transaction{}).
			Where(&models.Transaction{ID: id}).
			First(&updated).
			Error; err != nil {
			return err
		}
		txn = &updated
		return nil
	})
	if err != nil {
		log.Printf("Error updating Transaction [%s]: %s\n", id.String(), err.Error())
		return nil, err
	}
	return txn, nil
}

func GetTransactionStats(userId uint) ([]types.TransactionStatsRow, error) {
	db := db.GetDb()
	var rows []types.TransactionStatsRow
	err := db.
		Model(&models.Transaction{}).
		Select("status, COUNT(id) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ?", userId).
		Group("status").
		Find(&rows).
		Error
	return rows, err
}

// CheckAvailability reports whether any live reservation overlaps the
// range. Expired holds are released by the scheduler job, so pending
// rows still count here.
func CheckAvailability(tx *gorm.DB, propertyId uuid.UUID, checkIn time.Time, checkOut time.Time) (bool, error) {
	var count int64
	err := tx.
		Model(&models.Reservation{}).
		Where("property_id = ?", propertyId).
		Where("status IN (?)", []string{string(types.RESERVATION_PENDING), string(types.RESERVATION_CONFIRMED)}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateReservation serializes on a per-property advisory lock so two
// concurrent requests for overlapping dates cannot both pass the
// availability check.
func CreateReservation(userId uint, params *types.CreateReservationRequestBody) (*models.Reservation, error) {
	propertyId, err := uuid.Parse(params.PropertyID)
	if err != nil {
		return nil, err
	}
	checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckOut)
	if err != nil {
		return nil, err
	}
	validUntil := time.Now().Add(RESERVATION_HOLD)
	reservation := models.Reservation{
		PropertyID: propertyId,
		UserID:     userId,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     params.Guests,
		Status:     string(types.RESERVATION_PENDING),
		ValidUntil: &validUntil,
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", propertyId.String()).Error; err != nil {
			return err
		}
		var property models.Property
		if err := tx.
			Where(&models.Property{ID: propertyId}).
			First(&property).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		available, err := CheckAvailability(tx, propertyId, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !available {
			return ErrNotAvailable
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateReservation failed: %s\n", err.Error())
		return nil, err
	}
	return &reservation, nil
}

func GetOwnReservations(userId uint) ([]models.Reservation, error) {
	db := db.GetDb()
	var reservations []models.Reservation
	err := db.
		Model(&models.Reservation{}).
		Where(&models.Reservation{UserID: userId}).
		Preload("Property").
		Preload("Transaction").
		Order("created_at DESC").
		Limit(100).
		Find(&reservations).
		Error
	return reservations, err
}

// CancelReservation cancels the reservation and its linked transaction
// in the same database transaction.
func CancelReservation(userId uint, reservationId uint) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: reservationId, UserID: userId}).
			First(&reservation).
			Error
		if err != nil {
			return err
		}
		err = tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: reservationId}).
			Update("status", types.RESERVATION_CANCELED).
			Error
		if err != nil {
			return err
		}
		if reservation.TransactionID != nil {
			err = tx.
				Model(&models.Transaction{}).
				Where("id = ?", *reservation.TransactionID).
				Update("status", types.TRANSACTION_CANCELED).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func PropertySlug(title string) string {
	return slug.Make(title)
}

func GenerateTransactionRef() string {
	return fmt.Sprintf("txn_%d", time.Now().UnixMilli())
}

func GenerateJWT(email string, userId uint, role string) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}
