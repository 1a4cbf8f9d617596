package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fieldops/internal/usecase/interfaces"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidProviderPaymentID = errors.New("invalid provider payment id")

// MercadoPagoGateway looks up pix and card payments the crew declares as receipts.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if IsMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

// GetPayment fetches a provider payment by id. In mock mode every lookup is
// approved and carries no amount, so the amount check is skipped.
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, providerPaymentID string) (providerStatus string, amount float64, providerResponse json.RawMessage, err error) {
	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil || id <= 0 {
		return "", 0, nil, ErrInvalidProviderPaymentID
	}

	if g != nil && g.mockMode {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		resp := map[string]any{
			"id":            id,
			"status":        "approved",
			"status_detail": "accredited",
			"date_approved": now,
			"mock":          true,
		}
		b, err := json.Marshal(resp)
		if err != nil {
			log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
			return "", 0, nil, err
		}
		log.Printf("[payment][gateway] mock lookup provider_payment_id=%d provider_status=approved", id)
		return "approved", 0, b, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", 0, nil, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] lookup start provider_payment_id=%d", id)

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed provider_payment_id=%d err=%v", id, err)
		return "", 0, nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return "", 0, nil, err
	}
	log.Printf("[payment][gateway] lookup success provider_payment_id=%d provider_status=%s amount=%.2f", resp.ID, resp.Status, resp.TransactionAmount)

	return resp.Status, resp.TransactionAmount, b, nil
}

// IsMockEnabled reports whether PAYMENT_GATEWAY_MOCK or MERCADOPAGO_MOCK is switched on.
func IsMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

// String names the gateway mode for startup logs.
func (g *MercadoPagoGateway) String() string {
	if g != nil && g.mockMode {
		return "mercadopago(mock)"
	}
	return fmt.Sprintf("mercadopago(configured=%t)", g != nil && g.client != nil)
}
