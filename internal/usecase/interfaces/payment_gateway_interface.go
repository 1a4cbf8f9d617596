package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The backend uses it to confirm that a pix/card receipt reference handed over by
// the crew is an approved provider payment, and keeps the provider response for audit.
type IPaymentGateway interface {
	GetPayment(ctx context.Context, providerPaymentID string) (providerStatus string, amount float64, providerResponse json.RawMessage, err error)
}
