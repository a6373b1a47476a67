// Package payment wraps third-party payment gateways behind a single
// interface that creates payment intents and returns the client secret.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/coursehub-backend/internal/config"
)

var (
	// ErrInvalidAmount is returned for non-positive charge amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrGateway wraps every failure reported by the provider.
	ErrGateway = errors.New("payment gateway error")
	// ErrUnsupportedCurrency is returned when the provider cannot charge in the requested currency.
	ErrUnsupportedCurrency = errors.New("currency not supported by payment provider")
)

// IntentRequest describes a charge to prepare. Amount is in minor units (cents).
type IntentRequest struct {
	Amount       int64
	Currency     string
	ReceiptEmail string
}

// Intent is the gateway-side charge the client completes with ClientSecret.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Gateway creates payment intents with an external provider.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// New builds the gateway selected by PAYMENT_PROVIDER.
func New(cfg *config.Config) (Gateway, error) {
	switch cfg.PaymentProvider {
	case config.PaymentProviderStripe, "":
		return NewStripeGateway(cfg.PaymentSecretKey, nil), nil
	case config.PaymentProviderMidtrans:
		if !strings.EqualFold(cfg.PaymentCurrency, MidtransCurrency) {
			return nil, fmt.Errorf("%w: midtrans charges in %s, PAYMENT_CURRENCY is %q",
				ErrUnsupportedCurrency, MidtransCurrency, cfg.PaymentCurrency)
		}
		return NewMidtransGateway(cfg.PaymentSecretKey, cfg.PaymentProduction), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}
