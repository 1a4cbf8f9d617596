// Package syncchannel keeps the console's job board in step with the backend
// push channel while a session is active and the console is visible.
package syncchannel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fieldops/internal/adapter/realtime"
	"fieldops/internal/console/backend"
	"fieldops/internal/console/board"
	"fieldops/internal/console/notify"
)

// Transport delivers push messages for one team until ctx is cancelled.
// Reconnecting after a drop is the transport's job.
type Transport interface {
	Run(ctx context.Context, cred backend.Credential, handle func(realtime.JobsMessage)) error
}

// Manager owns the single live push subscription of the console.
type Manager struct {
	transport Transport
	board     *board.Board
	notifier  notify.Notifier
	logger    *slog.Logger

	mu     sync.Mutex
	cred   backend.Credential
	active bool
	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager(transport Transport, b *board.Board, notifier notify.Notifier, logger *slog.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{transport: transport, board: b, notifier: notifier, logger: logger}
}

// Open starts the channel for cred and remembers cred as the active session.
// Opening an already open channel for the same team is a no-op.
func (m *Manager) Open(ctx context.Context, cred backend.Credential) error {
	if cred.TeamID == "" {
		return errors.New("sync channel: empty team id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil && m.cred == cred {
		return nil
	}
	m.stopLocked()

	m.cred = cred
	m.active = true
	m.startLocked(ctx)
	return nil
}

// Close tears the channel down and waits for its reader. The session stays
// active, so a later SetVisible(true) reopens it.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Stop closes the channel and forgets the session (logout).
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.active = false
	m.cred = backend.Credential{}
}

// SetVisible closes the channel when the console is hidden and reopens it when
// it becomes visible again, provided a session is still active.
func (m *Manager) SetVisible(ctx context.Context, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !visible {
		m.stopLocked()
		return
	}
	if m.active && m.cancel == nil {
		m.startLocked(ctx)
	}
}

func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

func (m *Manager) startLocked(parent context.Context) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	cred := m.cred

	m.logger.Info("sync channel open", "team_id", cred.TeamID)
	go func() {
		err := m.transport.Run(ctx, cred, m.apply)
		if err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Warn("sync channel ended", "team_id", cred.TeamID, "error", err)
		}
		close(done)

		// The transport gave up on its own: forget the dead reader so that
		// IsOpen, SetVisible and Open see a closed channel.
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.done == done {
			m.cancel()
			m.cancel = nil
			m.done = nil
		}
	}()
}

func (m *Manager) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.logger.Info("sync channel closed", "team_id", m.cred.TeamID)
	m.cancel = nil
	m.done = nil
}

func (m *Manager) apply(msg realtime.JobsMessage) {
	if msg.Type != realtime.MessageTypeUpdate {
		m.logger.Debug("sync channel ignored message", "type", msg.Type)
		return
	}
	prev, next := m.board.Replace(msg.Jobs)
	m.logger.Debug("sync channel snapshot", "previous", prev, "jobs", next)
	if k := next - prev; k > 0 {
		m.notifier.Notify(notify.Info(NewJobsMessage(k)))
	}
}

// NewJobsMessage is the notice shown when a snapshot brings k more jobs.
func NewJobsMessage(k int) string {
	if k == 1 {
		return "1 new work order"
	}
	return fmt.Sprintf("%d new work orders", k)
}
