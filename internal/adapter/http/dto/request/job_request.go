package request

import (
	"errors"
	"strings"
	"time"

	"fieldops/internal/domain/entities"
)

var ErrInvalidJobStatus = errors.New("invalid job status")

// JobMutationRequest is the PATCH /jobs/{id} payload sent by the field console.
//
// The team credential travels with every mutation.
type JobMutationRequest struct {
	TeamID     string     `json:"team_id" binding:"required"`
	Password   string     `json:"password" binding:"required"`
	Status     string     `json:"status" binding:"required"`
	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// ResolveStatus accepts only the statuses a console may move a job into.
func (r JobMutationRequest) ResolveStatus() (entities.WorkOrderStatus, error) {
	s := entities.WorkOrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
	switch s {
	case entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCompleted:
		return s, nil
	}
	return "", ErrInvalidJobStatus
}

// ResolveAt picks the device timestamp matching the requested status.
func (r JobMutationRequest) ResolveAt(status entities.WorkOrderStatus) *time.Time {
	if status == entities.WorkOrderStatusInProgress {
		return r.StartedAt
	}
	return r.FinishedAt
}

// PaymentReceiptRequest is the POST /jobs/{id}/payment-receipt payload.
type PaymentReceiptRequest struct {
	TeamID         string `json:"team_id" binding:"required"`
	Password       string `json:"password" binding:"required"`
	PaymentMethod  string `json:"payment_method"`
	Receipt        string `json:"receipt"`
	ReceiptFileKey string `json:"receipt_file_key"`
}
