package interfaces

import "fieldops/internal/domain/entities"

// IJobPublisher pushes the full job list of a team to its connected consoles.
type IJobPublisher interface {
	Publish(teamID string, jobs []entities.WorkOrder)
}
