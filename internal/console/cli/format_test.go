package cli

import (
	"bytes"
	"testing"
	"time"

	"fieldops/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "a", truncate("abcd", 1))
	assert.Equal(t, "Sã…", truncate("São Paulo", 3))
}

func TestPaymentLabel(t *testing.T) {
	tests := []struct {
		name string
		job  entities.WorkOrder
		want string
	}{
		{"pending", entities.WorkOrder{Status: entities.WorkOrderStatusPending, Value: 100}, "-"},
		{"completed unpaid", entities.WorkOrder{Status: entities.WorkOrderStatusCompleted, Value: 100}, "to receive"},
		{"completed free", entities.WorkOrder{Status: entities.WorkOrderStatusCompleted}, "-"},
		{"received", entities.WorkOrder{Status: entities.WorkOrderStatusCompleted, Value: 100, Received: true}, "received"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentLabel(tt.job))
		})
	}
}

func TestMoneyAndDay(t *testing.T) {
	assert.Equal(t, "R$ 1500.50", money(1500.5))
	assert.Equal(t, "-", day(time.Time{}))
}

func TestActionList(t *testing.T) {
	assert.Equal(t, "start, navigate", actionList(entities.WorkOrder{Status: entities.WorkOrderStatusPending, Address: "Rua A"}))
	assert.Equal(t, "-", actionList(entities.WorkOrder{Status: entities.WorkOrderStatusCancelled}))
}

func TestRenderJobs(t *testing.T) {
	var buf bytes.Buffer
	renderJobs(&buf, nil)
	assert.Contains(t, buf.String(), "No work orders assigned.")

	buf.Reset()
	renderJobs(&buf, []entities.WorkOrder{{ID: "job-1", Title: "Furo", Status: entities.WorkOrderStatusInProgress, FinalValue: 950}})
	assert.Contains(t, buf.String(), "TITLE")
	assert.Contains(t, buf.String(), "in progress")
	assert.Contains(t, buf.String(), "R$ 950.00")
}
