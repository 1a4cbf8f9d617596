package board

import (
	"sync"
	"testing"

	"fieldops/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(id string, status entities.WorkOrderStatus) entities.WorkOrder {
	return entities.WorkOrder{ID: id, TeamID: "team-1", Status: status}
}

func TestReplace_CountsAndOrder(t *testing.T) {
	b := New()

	prev, next := b.Replace([]entities.WorkOrder{job("b", entities.WorkOrderStatusPending), job("a", entities.WorkOrderStatusPending)})
	assert.Equal(t, 0, prev)
	assert.Equal(t, 2, next)

	prev, next = b.Replace([]entities.WorkOrder{job("a", entities.WorkOrderStatusPending)})
	assert.Equal(t, 2, prev)
	assert.Equal(t, 1, next)

	list := b.List()
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestReplace_PreservesInFlightRecord(t *testing.T) {
	b := New()
	b.Replace([]entities.WorkOrder{job("a", entities.WorkOrderStatusPending), job("b", entities.WorkOrderStatusPending)})

	require.True(t, b.BeginMutation("a"))
	b.Replace([]entities.WorkOrder{job("a", entities.WorkOrderStatusCancelled), job("b", entities.WorkOrderStatusInProgress)})

	a, _ := b.Get("a")
	bb, _ := b.Get("b")
	assert.Equal(t, entities.WorkOrderStatusPending, a.Status, "in-flight record must not be clobbered")
	assert.Equal(t, entities.WorkOrderStatusInProgress, bb.Status)

	b.Upsert(job("a", entities.WorkOrderStatusInProgress))
	b.EndMutation("a")
	b.Replace([]entities.WorkOrder{job("a", entities.WorkOrderStatusCompleted), job("b", entities.WorkOrderStatusInProgress)})
	a, _ = b.Get("a")
	assert.Equal(t, entities.WorkOrderStatusCompleted, a.Status)
}

func TestBeginMutation_RefusesSecond(t *testing.T) {
	b := New()
	assert.True(t, b.BeginMutation("a"))
	assert.False(t, b.BeginMutation("a"))
	assert.True(t, b.InFlight("a"))
	b.EndMutation("a")
	assert.False(t, b.InFlight("a"))
	assert.True(t, b.BeginMutation("a"))
}

func TestReset(t *testing.T) {
	b := New()
	b.Replace([]entities.WorkOrder{job("a", entities.WorkOrderStatusPending)})
	b.BeginMutation("a")
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.False(t, b.InFlight("a"))
	prev, _ := b.Replace(nil)
	assert.Equal(t, 0, prev)
}

func TestConcurrentWriters(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Replace([]entities.WorkOrder{job("a", entities.WorkOrderStatusPending)})
		}()
		go func() {
			defer wg.Done()
			b.Upsert(job("a", entities.WorkOrderStatusInProgress))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, b.Len())
}
