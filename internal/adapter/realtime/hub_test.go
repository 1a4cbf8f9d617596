package realtime

import (
	"testing"

	"fieldops/internal/domain/entities"
)

func TestHub_PublishKeepsLatestSnapshot(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("team-1")
	defer sub.Close()
	other := h.Subscribe("team-2")
	defer other.Close()

	h.Publish("team-1", []entities.WorkOrder{{ID: "a"}})
	h.Publish("team-1", []entities.WorkOrder{{ID: "a"}, {ID: "b"}})

	msg := <-sub.C()
	if msg.Type != MessageTypeUpdate || len(msg.Jobs) != 2 {
		t.Fatalf("expected latest snapshot with 2 jobs, got %+v", msg)
	}
	select {
	case m := <-sub.C():
		t.Fatalf("expected no stale snapshot, got %+v", m)
	default:
	}
	select {
	case m := <-other.C():
		t.Fatalf("team-2 must not receive team-1 jobs, got %+v", m)
	default:
	}
}

func subscribers(h *Hub, teamID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[teamID])
}

func TestHub_CloseUnsubscribes(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("team-1")
	if subscribers(h, "team-1") != 1 {
		t.Fatalf("expected one subscriber")
	}
	sub.Close()
	sub.Close()
	if subscribers(h, "team-1") != 0 {
		t.Fatalf("expected no subscribers after close")
	}
	if _, ok := <-sub.C(); ok {
		t.Fatalf("expected closed channel")
	}
	h.Publish("team-1", nil)
}
