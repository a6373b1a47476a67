package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransCurrency is the only currency Snap transactions are charged in.
const MidtransCurrency = "idr"

// MidtransGateway creates Snap transactions. The Snap token plays the role
// of the client secret.
type MidtransGateway struct {
	client snap.Client
}

// NewMidtransGateway returns a Snap gateway for the sandbox or production environment.
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	g := &MidtransGateway{}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

// CreateIntent opens a Snap transaction for the gross amount.
// The Snap SDK takes no context; ctx is only checked before the call.
func (g *MidtransGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !strings.EqualFold(req.Currency, MidtransCurrency) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, req.Currency)
	}
	gross := GrossAmount(req.Amount)
	if gross <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}
	if req.ReceiptEmail != "" {
		snapReq.CustomerDetail = &midtrans.CustomerDetails{Email: req.ReceiptEmail}
	}

	resp, mErr := g.client.CreateTransaction(snapReq)
	if mErr != nil {
		return nil, fmt.Errorf("%w: midtrans create transaction: %w", ErrGateway, mErr)
	}

	return &Intent{
		ID:           orderID,
		ClientSecret: resp.Token,
		Amount:       gross,
		Currency:     MidtransCurrency,
	}, nil
}

// GrossAmount converts minor units to the whole-unit amount Snap expects,
// rounding half up.
func GrossAmount(minor int64) int64 {
	if minor <= 0 {
		return 0
	}
	return (minor + 50) / 100
}
