package lib

import (
	"log"
	"stays/src/db"
	"stays/src/models"
	"stays/src/types"
	"stays/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentProcessor is the capability boundary for recording a payment
// from checkout input. The only variant shipped is the simulation; a
// gateway-backed variant would be substituted here without touching
// callers.
type PaymentProcessor interface {
	Process(userId uint, checkout *types.CheckoutRequestBody) (*models.Transaction, error)
}

var paymentProcessor PaymentProcessor

func GetPaymentProcessor() PaymentProcessor {
	if paymentProcessor != nil {
		return paymentProcessor
	}
	paymentProcessor = &SimulatedPaymentProcessor{}
	return paymentProcessor
}

// NewPaymentProcessor Replace processor instance with custom implementation
func NewPaymentProcessor(p PaymentProcessor) {
	paymentProcessor = p
}

// SimulatedPaymentProcessor fabricates a transaction instead of calling
// a gateway: fixed amount, canned card snapshot, canned reservation
// reference, status always "completed". It cannot decline.
type SimulatedPaymentProcessor struct{}

const (
	SIMULATED_AMOUNT          = 150
	SIMULATED_RESERVATION_REF = "reservation123"
)

func (p *SimulatedPaymentProcessor) Process(userId uint, checkout *types.CheckoutRequestBody) (*models.Transaction, error) {
	var propertyId *uuid.UUID
	if parsed, err := uuid.Parse(checkout.PropertyID); err == nil {
		propertyId = &parsed
	}
	txn := models.Transaction{
		UserID:         userId,
		PropertyID:     propertyId,
		ReservationRef: SIMULATED_RESERVATION_REF,
		Amount:         SIMULATED_AMOUNT,
		Currency:       "USD",
		Status:         types.TRANSACTION_COMPLETED,
		ReferenceID:    utils.GenerateTransactionRef(),
		Description:    "Simulated payment for property reservation",
		PaymentMethod: types.JSONB{
			"id":          "1",
			"user_id":     "user123",
			"type":        "card",
			"brand":       "visa",
			"holder_name": checkout.Payment.HolderName,
		},
		Metadata: types.JSONB{
			"simulated": true,
			"check_in":  checkout.CheckIn,
			"check_out": checkout.CheckOut,
			"guests":    checkout.Guests,
		},
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error while creating Transaction: %s\n", err.Error())
		return nil, err
	}
	return &txn, nil
}
