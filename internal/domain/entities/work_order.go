package entities

import "time"

// WorkOrderStatus represents the lifecycle of a work order (job) assigned to a team.
//
// Domain notes:
//   - Transitions only move forward: pending -> in_progress -> completed.
//   - cancelled is set by the back office; the field console never leaves completed or cancelled.
type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderStatusPending, WorkOrderStatusInProgress, WorkOrderStatusCompleted, WorkOrderStatusCancelled:
		return true
	}
	return false
}

// ServiceItem is one line of the drilling service list of a work order.
type ServiceItem struct {
	ServiceType      string   `json:"service_type"`
	SiteType         string   `json:"site_type"`
	SoilType         string   `json:"soil_type"`
	AccessDifficulty string   `json:"access_difficulty"`
	StakeDiameterCM  *float64 `json:"stake_diameter_cm,omitempty"`
	StakeDepthM      *float64 `json:"stake_depth_m,omitempty"`
	DiagnosticRef    string   `json:"diagnostic_ref,omitempty"`
}

// WorkOrder is a unit of field work assigned to a team.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (team_id-index): team_id
//
// StartedAt/FinishedAt are written once, by the transition that enters
// in_progress/completed. Received mirrors the existence of a CashTransaction.
type WorkOrder struct {
	ID          string          `json:"id"`
	TeamID      string          `json:"team_id"`
	Title       string          `json:"title"`
	Status      WorkOrderStatus `json:"status"`
	ClientName  string          `json:"client_name"`
	Address     string          `json:"address"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	PlannedDate time.Time       `json:"planned_date"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
	Services    []ServiceItem   `json:"services,omitempty"`
	Notes       string          `json:"notes,omitempty"`

	Value      float64 `json:"value"`
	FinalValue float64 `json:"final_value"`

	Received       bool       `json:"received"`
	ReceivedAt     *time.Time `json:"received_at,omitempty"`
	Receipt        string     `json:"receipt,omitempty"`
	ReceiptFileKey string     `json:"receipt_file_key,omitempty"`

	ClientSignature string     `json:"client_signature,omitempty"`
	ClientSignedAt  *time.Time `json:"client_signed_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// PayableAmount is the amount to collect: the final value once the job was
// re-priced on site, the planned value otherwise.
func (w WorkOrder) PayableAmount() float64 {
	if w.FinalValue > 0 {
		return w.FinalValue
	}
	return w.Value
}

func (w WorkOrder) HasCoordinates() bool {
	return w.Latitude != nil && w.Longitude != nil
}

func (w WorkOrder) CanStart() bool {
	return w.Status == WorkOrderStatusPending
}

// CanComplete also accepts a pending job that already carries StartedAt,
// which happens when a previous run was interrupted after starting.
func (w WorkOrder) CanComplete() bool {
	if w.Status == WorkOrderStatusInProgress {
		return true
	}
	return w.Status == WorkOrderStatusPending && w.StartedAt != nil
}

// CanReceivePayment checks the local half of the receipt guard. The ledger
// lookup for an existing transaction is the other half and is done by callers.
func (w WorkOrder) CanReceivePayment() bool {
	return w.Status == WorkOrderStatusCompleted && w.PayableAmount() > 0 && !w.Received
}
