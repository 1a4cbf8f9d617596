package interfaces

import (
	"context"
	"fieldops/internal/domain/entities"
)

// IReceiptFileRepository stores uploaded payment receipts.

type IReceiptFileRepository interface {
	Put(ctx context.Context, f entities.ReceiptFile) error
	Get(ctx context.Context, key string) (entities.ReceiptFile, error)
}
