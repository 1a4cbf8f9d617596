// Package board holds the console's in-memory job collection.
//
// Two writers share it: command results (Upsert) and push snapshots (Replace).
// Both are whole-record replacements, the last one to land wins, and a record
// with a command in flight is never overwritten by a snapshot.
package board

import (
	"sync"

	"fieldops/internal/domain/entities"
)

type Board struct {
	mu          sync.Mutex
	order       []string
	jobs        map[string]entities.WorkOrder
	inflight    map[string]struct{}
	snapshotLen int
	changed     chan struct{}
}

func New() *Board {
	return &Board{
		jobs:     make(map[string]entities.WorkOrder),
		inflight: make(map[string]struct{}),
		changed:  make(chan struct{}, 1),
	}
}

// Replace installs a full snapshot and returns the job counts of the previous
// and the new snapshot.
func (b *Board) Replace(snapshot []entities.WorkOrder) (prev, next int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	jobs := make(map[string]entities.WorkOrder, len(snapshot))
	order := make([]string, 0, len(snapshot))
	for _, j := range snapshot {
		if _, dup := jobs[j.ID]; !dup {
			order = append(order, j.ID)
		}
		jobs[j.ID] = j
	}
	for id := range b.inflight {
		local, ok := b.jobs[id]
		if !ok {
			continue
		}
		if _, present := jobs[id]; !present {
			order = append(order, id)
		}
		jobs[id] = local
	}

	prev = b.snapshotLen
	b.snapshotLen = len(snapshot)
	b.jobs = jobs
	b.order = order
	b.signal()
	return prev, b.snapshotLen
}

// Upsert stores a job returned by a command.
func (b *Board) Upsert(job entities.WorkOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.jobs[job.ID]; !ok {
		b.order = append(b.order, job.ID)
	}
	b.jobs[job.ID] = job
	b.signal()
}

func (b *Board) Get(id string) (entities.WorkOrder, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	j, ok := b.jobs[id]
	return j, ok
}

// List returns the jobs in snapshot order.
func (b *Board) List() []entities.WorkOrder {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entities.WorkOrder, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.jobs[id])
	}
	return out
}

func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// BeginMutation marks id as having a command in flight. It reports false when
// one already is.
func (b *Board) BeginMutation(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[id]; busy {
		return false
	}
	b.inflight[id] = struct{}{}
	return true
}

func (b *Board) EndMutation(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, id)
}

func (b *Board) InFlight(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, busy := b.inflight[id]
	return busy
}

// Reset empties the board, e.g. on logout.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = nil
	b.jobs = make(map[string]entities.WorkOrder)
	b.inflight = make(map[string]struct{})
	b.snapshotLen = 0
	b.signal()
}

// Changed fires (coalesced) after every write.
func (b *Board) Changed() <-chan struct{} {
	return b.changed
}

func (b *Board) signal() {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}
