package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeGateway creates card PaymentIntents through the Stripe API.
type StripeGateway struct {
	client *paymentintent.Client
}

// NewStripeGateway returns a gateway using secretKey. A nil backend selects
// the default Stripe API backend; tests pass one pointed at a local server.
func NewStripeGateway(secretKey string, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		client: &paymentintent.Client{B: backend, Key: secretKey},
	}
}

// CreateIntent creates a PaymentIntent restricted to card payments.
func (g *StripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}

	pi, err := g.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe create payment intent: %w", ErrGateway, err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
