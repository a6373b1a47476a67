package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a completed checkout of one cart item.
type Payment struct {
	ID            uuid.UUID  `json:"_id" db:"id"`
	Email         string     `json:"email" db:"email"`
	TransactionID string     `json:"transaction_id" db:"transaction_id"`
	Amount        float64    `json:"price" db:"amount"`
	Currency      string     `json:"currency" db:"currency"`
	ClassID       *uuid.UUID `json:"class_id,omitempty" db:"class_id"`
	CartItemID    uuid.UUID  `json:"product_id" db:"cart_item_id"`
	ClassName     string     `json:"class_name" db:"class_name"`
	CreatedAt     time.Time  `json:"date" db:"created_at"`
}

// CreatePaymentIntentRequest is the payload for POST /create-payment-intent.
type CreatePaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0,max=99999999.99"`
}

// CreatePaymentIntentResponse carries the secret the client uses to confirm the charge.
type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// RecordPaymentRequest is the payload for POST /payments.
type RecordPaymentRequest struct {
	Email         string     `json:"email" binding:"required,email,max=255"`
	TransactionID string     `json:"transaction_id" binding:"required,max=255"`
	Price         float64    `json:"price" binding:"gte=0,max=99999999.99"`
	ClassID       *uuid.UUID `json:"class_id"`
	ProductID     uuid.UUID  `json:"product_id" binding:"required"`
	ClassName     string     `json:"class_name" binding:"max=255"`
}

// ListPaymentsQuery binds GET /payments?email=.
type ListPaymentsQuery struct {
	Email string `form:"email" binding:"required,email"`
}

// CheckoutResult mirrors the {result, deleteResult} pair returned after recording a payment.
type CheckoutResult struct {
	Result       InsertResult `json:"result"`
	DeleteResult DeleteResult `json:"deleteResult"`
}
