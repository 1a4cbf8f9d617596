package interfaces

import (
	"context"
	"fieldops/internal/domain/entities"
)

// ITeamRepository abstracts DynamoDB persistence for Team.
//
// GetByID returns a zero Team (ID == "") when the team does not exist.

type ITeamRepository interface {
	GetByID(ctx context.Context, id string) (entities.Team, error)
	UpdateLastLocation(ctx context.Context, id string, loc entities.Location) (entities.Team, error)
}
