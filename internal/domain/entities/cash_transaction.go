package entities

import (
	"encoding/json"
	"strings"
	"time"
)

// MaxReceiptLength bounds the free-text receipt reference (NSU, pix id, note).
const MaxReceiptLength = 200

// PaymentMethod is how the client paid the crew on site.
type PaymentMethod string

const (
	PaymentMethodPix           PaymentMethod = "pix"
	PaymentMethodDinheiro      PaymentMethod = "dinheiro"
	PaymentMethodCartaoCredito PaymentMethod = "cartao_credito"
	PaymentMethodCartaoDebito  PaymentMethod = "cartao_debito"
	PaymentMethodTransferencia PaymentMethod = "transferencia"
	PaymentMethodBoleto        PaymentMethod = "boleto"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodPix,
	PaymentMethodDinheiro,
	PaymentMethodCartaoCredito,
	PaymentMethodCartaoDebito,
	PaymentMethodTransferencia,
	PaymentMethodBoleto,
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PaymentMethods {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// ProviderVerifiable reports whether a receipt for this method can be checked
// against the payment provider.
func (m PaymentMethod) ProviderVerifiable() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCartaoCredito, PaymentMethodCartaoDebito:
		return true
	}
	return false
}

// CashTransaction is the ledger entry created when a crew receives payment for a job.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (job_id-index): job_id
//
// A job has at most one transaction. Its existence is the authoritative answer
// to "was this job paid"; WorkOrder.Received is a cache of that fact.
type CashTransaction struct {
	ID             string        `json:"id"`
	JobID          string        `json:"job_id"`
	TeamID         string        `json:"team_id"`
	Amount         float64       `json:"amount"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Receipt        string        `json:"receipt,omitempty"`
	ReceiptFileKey string        `json:"receipt_file_key,omitempty"`
	Description    string        `json:"description,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
