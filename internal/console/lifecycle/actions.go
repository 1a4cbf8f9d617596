package lifecycle

import "fieldops/internal/domain/entities"

type Action string

const (
	ActionStart          Action = "start"
	ActionComplete       Action = "complete"
	ActionReceivePayment Action = "receive"
	ActionNavigate       Action = "navigate"
)

// Actions lists the commands the console may offer for job, in display order.
// The ledger half of the payment guard is checked when the command runs.
func Actions(job entities.WorkOrder) []Action {
	var out []Action
	if job.CanStart() {
		out = append(out, ActionStart)
	}
	if job.CanComplete() {
		out = append(out, ActionComplete)
	}
	if job.CanReceivePayment() {
		out = append(out, ActionReceivePayment)
	}
	if job.Address != "" || job.HasCoordinates() {
		out = append(out, ActionNavigate)
	}
	return out
}
