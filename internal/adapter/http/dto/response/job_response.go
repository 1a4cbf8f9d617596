package response

import (
	"fieldops/internal/domain/entities"
	"time"
)

type TeamResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	LastLocation *entities.Location `json:"last_location,omitempty"`
}

// CredentialExchangeResponse is the body of a successful team login.
type CredentialExchangeResponse struct {
	Team TeamResponse         `json:"team"`
	Jobs []entities.WorkOrder `json:"jobs"`
}

type TransactionResponse struct {
	ID             string    `json:"id"`
	TransactionID  string    `json:"transaction_id"`
	JobID          string    `json:"job_id"`
	TeamID         string    `json:"team_id"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	Receipt        string    `json:"receipt,omitempty"`
	ReceiptFileKey string    `json:"receipt_file_key,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Verified       bool      `json:"provider_verified"`
}

// PaymentReceiptResponse carries the new ledger entry and the updated job.
type PaymentReceiptResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Job         entities.WorkOrder  `json:"job"`
}

type UploadResponse struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func FromTeam(t entities.Team) TeamResponse {
	return TeamResponse{ID: t.ID, Name: t.Name, LastLocation: t.LastLocation}
}

func FromCredentialExchange(t entities.Team, jobs []entities.WorkOrder) CredentialExchangeResponse {
	if jobs == nil {
		jobs = []entities.WorkOrder{}
	}
	return CredentialExchangeResponse{Team: FromTeam(t), Jobs: jobs}
}

func FromCashTransaction(t entities.CashTransaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		TransactionID:  t.ID,
		JobID:          t.JobID,
		TeamID:         t.TeamID,
		Amount:         t.Amount,
		PaymentMethod:  string(t.PaymentMethod),
		Receipt:        t.Receipt,
		ReceiptFileKey: t.ReceiptFileKey,
		Description:    t.Description,
		CreatedAt:      t.CreatedAt,
		Verified:       len(t.ProviderPayloadRaw) > 0,
	}
}

func FromCashTransactions(ts []entities.CashTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromCashTransaction(t))
	}
	return out
}

func FromReceiptFile(f entities.ReceiptFile) UploadResponse {
	return UploadResponse{Key: f.Key, ContentType: f.ContentType, Size: f.Size}
}
