package interfaces

import (
	"context"
	"fieldops/internal/domain/entities"
)

// ICashTransactionRepository abstracts DynamoDB persistence for CashTransaction.
//
// CreateForJob writes the transaction and marks the job as received in a single
// atomic write. It returns created=false, with no error, when the job was
// already received or the transaction id already exists.

type ICashTransactionRepository interface {
	CreateForJob(ctx context.Context, t entities.CashTransaction) (created bool, err error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.CashTransaction, error)
}
