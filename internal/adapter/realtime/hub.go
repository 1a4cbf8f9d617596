package realtime

import (
	"log"
	"sync"

	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"
)

// MessageTypeUpdate is the only message kind sent on the job push channel.
const MessageTypeUpdate = "update"

// JobsMessage is the push channel payload: a full replacement of the team job list.
type JobsMessage struct {
	Type string               `json:"type"`
	Jobs []entities.WorkOrder `json:"jobs"`
}

// Subscription receives the snapshots published for one team.
//
// Delivery keeps only the latest snapshot: a slow consumer skips intermediate
// lists, never receives them out of order.
type Subscription struct {
	teamID string
	ch     chan JobsMessage
	hub    *Hub
	once   sync.Once
}

func (s *Subscription) C() <-chan JobsMessage {
	return s.ch
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub fans out job snapshots to the consoles connected for each team.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

var _ interfaces.IJobPublisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(teamID string) *Subscription {
	s := &Subscription{teamID: teamID, ch: make(chan JobsMessage, 1), hub: h}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[teamID] == nil {
		h.subs[teamID] = make(map[*Subscription]struct{})
	}
	h.subs[teamID][s] = struct{}{}
	log.Printf("[push][hub] subscribed team_id=%s subscribers=%d", teamID, len(h.subs[teamID]))
	return s
}

func (h *Hub) Publish(teamID string, jobs []entities.WorkOrder) {
	msg := JobsMessage{Type: MessageTypeUpdate, Jobs: jobs}
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[teamID] {
		// Drop the stale snapshot still waiting, keep the newest.
		select {
		case <-s.ch:
		default:
		}
		s.ch <- msg
	}
	log.Printf("[push][hub] published team_id=%s jobs=%d subscribers=%d", teamID, len(jobs), len(h.subs[teamID]))
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[s.teamID]
	delete(set, s)
	if len(set) == 0 {
		delete(h.subs, s.teamID)
	}
	close(s.ch)
	log.Printf("[push][hub] unsubscribed team_id=%s subscribers=%d", s.teamID, len(set))
}
