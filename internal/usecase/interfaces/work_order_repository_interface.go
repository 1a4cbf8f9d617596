package interfaces

import (
	"context"
	"fieldops/internal/domain/entities"
	"time"
)

// StatusUpdate describes a forward status transition.
//
// The update is conditional on the stored status still being From, so two
// devices of the same team cannot both apply the same transition.
type StatusUpdate struct {
	From       entities.WorkOrderStatus
	To         entities.WorkOrderStatus
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
//
// The field console must be able to:
//   - list the jobs assigned to a team (credential exchange and push snapshots)
//   - move a job forward (start/complete)

type IWorkOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	ListByTeamID(ctx context.Context, teamID string) ([]entities.WorkOrder, error)
	UpdateStatus(ctx context.Context, id string, upd StatusUpdate) (entities.WorkOrder, error)
}
