package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/payment"
	"github.com/stemsi/coursehub-backend/internal/repository"
)

// PaymentService prepares gateway charges and records completed checkouts.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	gateway     payment.Gateway
	currency    string
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	gateway payment.Gateway,
	currency string,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		currency:    currency,
		log:         log.With().Str("component", "payment_service").Logger(),
	}
}

// MinorUnits converts a price to the smallest currency unit (cents).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent asks the gateway for a payment intent of price and returns it.
// The price is taken as given; it is not checked against a class.
func (s *PaymentService) CreateIntent(ctx context.Context, email string, price float64) (*payment.Intent, error) {
	amount := MinorUnits(price)
	if amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:       amount,
		Currency:     s.currency,
		ReceiptEmail: normalizeEmail(email),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("intent_id", intent.ID).
		Int64("amount", intent.Amount).
		Str("currency", intent.Currency).
		Msg("Payment intent created")

	return intent, nil
}

// Record stores a completed payment for callerEmail and clears the paid cart item.
// The payment must be made out to the caller, and the cart item must be theirs.
func (s *PaymentService) Record(ctx context.Context, callerEmail string, req model.RecordPaymentRequest) (*model.CheckoutResult, error) {
	if !SameEmail(req.Email, callerEmail) {
		return nil, ErrEmailMismatch
	}

	p := &model.Payment{
		Email:         normalizeEmail(callerEmail),
		TransactionID: req.TransactionID,
		Amount:        req.Price,
		Currency:      s.currency,
		ClassID:       req.ClassID,
		CartItemID:    req.ProductID,
		ClassName:     req.ClassName,
	}

	deleted, err := s.paymentRepo.RecordCheckout(ctx, p)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", p.ID.String()).
		Str("transaction_id", p.TransactionID).
		Str("cart_item_id", p.CartItemID.String()).
		Msg("Payment recorded")

	return &model.CheckoutResult{
		Result:       model.Inserted(p.ID),
		DeleteResult: model.Deleted(deleted),
	}, nil
}

// List retrieves the payment history of email.
func (s *PaymentService) List(ctx context.Context, email string) ([]model.Payment, error) {
	payments, err := s.paymentRepo.ListByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}
