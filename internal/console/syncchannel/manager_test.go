package syncchannel

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldops/internal/adapter/realtime"
	"fieldops/internal/console/backend"
	"fieldops/internal/console/board"
	"fieldops/internal/console/notify"
	"fieldops/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport hands every message sent on feed to the running subscription.
type fakeTransport struct {
	feed chan realtime.JobsMessage

	mu      sync.Mutex
	runs    int
	running int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{feed: make(chan realtime.JobsMessage)}
}

func (f *fakeTransport) Run(ctx context.Context, _ backend.Credential, handle func(realtime.JobsMessage)) error {
	f.mu.Lock()
	f.runs++
	f.running++
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.running--
		f.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-f.feed:
			handle(msg)
		}
	}
}

// quitTransport returns as soon as it is started, like a transport that
// hit a permanent error.
type quitTransport struct {
	mu   sync.Mutex
	runs int
}

func (q *quitTransport) Run(context.Context, backend.Credential, func(realtime.JobsMessage)) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.runs++
	return &backend.APIError{StatusCode: 401, Code: "INVALID_CREDENTIALS"}
}

func (q *quitTransport) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.runs
}

func (f *fakeTransport) counts() (runs, running int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs, f.running
}

func (f *fakeTransport) send(t *testing.T, jobs ...entities.WorkOrder) {
	t.Helper()
	select {
	case f.feed <- realtime.JobsMessage{Type: realtime.MessageTypeUpdate, Jobs: jobs}:
	case <-time.After(2 * time.Second):
		t.Fatal("no reader on the push feed")
	}
}

func jobs(ids ...string) []entities.WorkOrder {
	out := make([]entities.WorkOrder, 0, len(ids))
	for _, id := range ids {
		out = append(out, entities.WorkOrder{ID: id, Status: entities.WorkOrderStatusPending})
	}
	return out
}

var cred = backend.Credential{TeamID: "equipe-norte", Password: "xyz"}

func newManager(t *testing.T) (*Manager, *fakeTransport, *board.Board, *notify.Recorder) {
	t.Helper()
	tr := newFakeTransport()
	b := board.New()
	rec := &notify.Recorder{}
	m := NewManager(tr, b, rec, nil)
	t.Cleanup(m.Stop)
	return m, tr, b, rec
}

func TestOpen_IsIdempotent(t *testing.T) {
	m, tr, _, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Open(ctx, cred))
	require.NoError(t, m.Open(ctx, cred))
	require.Eventually(t, func() bool { _, running := tr.counts(); return running == 1 }, time.Second, 5*time.Millisecond)

	runs, _ := tr.counts()
	assert.Equal(t, 1, runs)
	assert.True(t, m.IsOpen())
}

func TestClose_WaitsForReader(t *testing.T) {
	m, tr, _, _ := newManager(t)
	require.NoError(t, m.Open(context.Background(), cred))
	require.Eventually(t, func() bool { _, running := tr.counts(); return running == 1 }, time.Second, 5*time.Millisecond)

	m.Close()
	_, running := tr.counts()
	assert.Equal(t, 0, running)
	assert.False(t, m.IsOpen())
	m.Close()
}

func TestSnapshot_NotifiesOnlyOnGrowth(t *testing.T) {
	m, tr, b, rec := newManager(t)
	b.Replace(jobs("a", "b"))
	require.NoError(t, m.Open(context.Background(), cred))

	tr.send(t, jobs("a", "b")...)
	tr.send(t, jobs("a", "b", "c", "d", "e")...)
	tr.send(t, jobs("a", "b", "c")...)
	tr.send(t, jobs("a", "b", "c")...)
	tr.send(t, jobs("a", "b", "c", "x")...)
	m.Close()

	notices := rec.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, "3 new work orders", notices[0].Message)
	assert.Equal(t, "1 new work order", notices[1].Message)
	assert.Equal(t, 4, b.Len())
}

func TestSnapshot_ReplacesBoardButKeepsInFlight(t *testing.T) {
	m, tr, b, _ := newManager(t)
	b.Replace(jobs("a", "b"))
	started := entities.WorkOrder{ID: "a", Status: entities.WorkOrderStatusInProgress}
	require.True(t, b.BeginMutation("a"))
	b.Upsert(started)

	require.NoError(t, m.Open(context.Background(), cred))
	tr.send(t, jobs("a", "c")...)
	m.Close()

	got, ok := b.Get("a")
	require.True(t, ok)
	assert.Equal(t, entities.WorkOrderStatusInProgress, got.Status)
	_, ok = b.Get("b")
	assert.False(t, ok)
	_, ok = b.Get("c")
	assert.True(t, ok)
}

func TestSetVisible(t *testing.T) {
	m, tr, _, _ := newManager(t)
	ctx := context.Background()

	m.SetVisible(ctx, true)
	assert.False(t, m.IsOpen(), "no session yet")

	require.NoError(t, m.Open(ctx, cred))
	m.SetVisible(ctx, false)
	assert.False(t, m.IsOpen())

	m.SetVisible(ctx, true)
	assert.True(t, m.IsOpen())
	m.SetVisible(ctx, true)
	runs, _ := tr.counts()
	require.Eventually(t, func() bool { runs, _ = tr.counts(); return runs == 2 }, time.Second, 5*time.Millisecond)

	m.Stop()
	m.SetVisible(ctx, true)
	assert.False(t, m.IsOpen(), "logged out")
}

func TestNonUpdateMessagesIgnored(t *testing.T) {
	m, tr, b, rec := newManager(t)
	require.NoError(t, m.Open(context.Background(), cred))
	select {
	case tr.feed <- realtime.JobsMessage{Type: "hello", Jobs: jobs("a")}:
	case <-time.After(2 * time.Second):
		t.Fatal("no reader")
	}
	m.Close()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, rec.Notices())
}

func TestManager_TransportExitClosesChannel(t *testing.T) {
	tr := &quitTransport{}
	m := NewManager(tr, board.New(), nil, nil)
	ctx := context.Background()

	require.NoError(t, m.Open(ctx, cred))
	require.Eventually(t, func() bool { return !m.IsOpen() }, 2*time.Second, 5*time.Millisecond)

	m.SetVisible(ctx, true)
	require.Eventually(t, func() bool { return tr.count() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !m.IsOpen() }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, m.Open(ctx, cred))
	require.Eventually(t, func() bool { return tr.count() == 3 }, 2*time.Second, 5*time.Millisecond)

	// Close and Stop after the reader is gone must not block.
	m.Close()
	m.Stop()
	assert.False(t, m.IsOpen())
}
