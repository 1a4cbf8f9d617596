package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fieldops/internal/adapter/http/dto/request"
	"fieldops/internal/adapter/http/dto/response"
	"fieldops/internal/console/backend"
	"fieldops/internal/console/config"
	"fieldops/internal/console/lifecycle"
	"fieldops/internal/console/navigation"
	"fieldops/internal/console/notify"
	"fieldops/internal/domain/entities"
	"fieldops/internal/testutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teamID   = "equipe-norte"
	password = "xyz"
)

// fakeBackend serves the subset of the field API the console calls.
type fakeBackend struct {
	mu   sync.Mutex
	jobs map[string]entities.WorkOrder
	txs  map[string][]response.TransactionResponse
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	planned := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	f := &fakeBackend{
		jobs: map[string]entities.WorkOrder{
			"job-1": {ID: "job-1", TeamID: teamID, Title: "Furo de estaca", Status: entities.WorkOrderStatusPending, Address: "Rua A, 10", PlannedDate: planned, Value: 1200},
			"job-2": {ID: "job-2", TeamID: teamID, Title: "Sondagem", Status: entities.WorkOrderStatusPending, Address: "Rua B, 20", PlannedDate: planned.Add(time.Hour), Value: 800},
		},
		txs: map[string][]response.TransactionResponse{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/team", func(w http.ResponseWriter, r *http.Request) {
		var req request.TeamCredentialRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.TeamID != teamID || req.Password != password {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "INVALID_CREDENTIALS", "message": "Invalid team credentials"})
			return
		}
		writeJSON(w, http.StatusOK, response.FromCredentialExchange(entities.Team{ID: teamID, Name: "Equipe Norte"}, f.list()))
	})
	mux.HandleFunc("PATCH /v1/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req request.JobMutationRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		status, err := req.ResolveStatus()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"code": "INVALID_STATUS"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		job := f.jobs[r.PathValue("id")]
		job.Status = status
		if at := req.ResolveAt(status); at != nil && status == entities.WorkOrderStatusInProgress {
			job.StartedAt = at
		} else if at != nil {
			job.FinishedAt = at
		}
		f.jobs[job.ID] = job
		writeJSON(w, http.StatusOK, job)
	})
	mux.HandleFunc("GET /v1/jobs/{id}/transactions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, teamID, r.Header.Get("X-Team-Id"))
		f.mu.Lock()
		defer f.mu.Unlock()
		out := f.txs[r.PathValue("id")]
		if out == nil {
			out = []response.TransactionResponse{}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("POST /v1/jobs/{id}/payment-receipt", func(w http.ResponseWriter, r *http.Request) {
		var req request.PaymentReceiptRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		if len(f.txs[id]) > 0 {
			writeJSON(w, http.StatusConflict, map[string]string{"code": "ALREADY_RECEIVED"})
			return
		}
		job := f.jobs[id]
		now := time.Now().UTC()
		job.Received, job.ReceivedAt, job.Receipt = true, &now, req.Receipt
		f.jobs[id] = job
		tx := response.FromCashTransaction(entities.CashTransaction{
			ID: "tx-" + id, JobID: id, TeamID: teamID, Amount: job.PayableAmount(),
			PaymentMethod: entities.PaymentMethod(req.PaymentMethod), Receipt: req.Receipt, CreatedAt: now,
		})
		f.txs[id] = append(f.txs[id], tx)
		writeJSON(w, http.StatusCreated, response.PaymentReceiptResponse{Transaction: tx, Job: job})
	})
	upgrader := websocket.Upgrader{}
	mux.HandleFunc("GET /v1/teams/{id}/jobs/stream", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" || r.Header.Get("X-Team-Password") != password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeBackend) job(id string) entities.WorkOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id]
}

func (f *fakeBackend) transactions(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.txs[id])
}

func (f *fakeBackend) list() []entities.WorkOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []entities.WorkOrder{f.jobs["job-1"], f.jobs["job-2"]}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	t      *testing.T
	cfg        config.Config
	configPath string
	opened     []string
}

func newHarness(t *testing.T) (*harness, *fakeBackend) {
	t.Helper()
	f, srv := newFakeBackend(t)
	cfg := config.Default("")
	cfg.APIURL = srv.URL + "/v1"
	cfg.Timeout = 5 * time.Second
	cfg.Platform = "desktop"
	cfg.ReportFix = false
	cfg.FallbackDelay = 0
	return &harness{t: t, cfg: cfg}, f
}

// run executes one console invocation against a fresh App, sharing the
// local store the way separate processes share the on-disk database.
func (h *harness) run(db *sql.DB, args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	app := h.app(db, &out)
	root := NewRootCmd(app)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) app(db *sql.DB, out *bytes.Buffer) *App {
	h.t.Helper()
	app, err := NewApp(h.cfg, db, nil, strings.NewReader(""), out)
	require.NoError(h.t, err)
	app.ConfigPath = h.configPath
	app.Opener = navigation.OpenerFunc(func(uri string) error {
		h.opened = append(h.opened, uri)
		return nil
	})
	h.t.Cleanup(app.Shutdown)
	return app
}

func TestLoginThenJobsFromRestoredSession(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)

	out, err := h.run(db, "login", "--team", teamID, "--password", password)
	require.NoError(t, err)
	assert.Contains(t, out, "[info] Logged in as Equipe Norte")
	assert.Contains(t, out, "2 work order(s) assigned")

	// no --team: the last cached team is restored silently
	out, err = h.run(db, "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "job-1")
	assert.Contains(t, out, "Furo de estaca")
	assert.Contains(t, out, "R$ 800.00")
	assert.NotContains(t, out, "Logged in as")
}

func TestLogin_RejectedCredential(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)

	out, err := h.run(db, "login", "--team", teamID, "--password", "wrong")
	require.Error(t, err)
	assert.True(t, backend.IsUnauthorized(err))
	assert.Contains(t, out, "[error] Invalid team credentials")

	_, err = h.run(db, "jobs")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)

	var out bytes.Buffer
	app, err := NewApp(h.cfg, db, nil, strings.NewReader(password+"\n"), &out)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)

	root := NewRootCmd(app)
	root.SetArgs([]string{"login", "--team", teamID})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.True(t, app.Sync.IsOpen())
}

func TestJobLifecycleCommands(t *testing.T) {
	h, f := newHarness(t)
	db := testutil.NewTestDB(t)
	_, err := h.run(db, "login", "--team", teamID, "--password", password)
	require.NoError(t, err)

	_, err = h.run(db, "start", "job-1")
	require.ErrorIs(t, err, lifecycle.ErrNotConfirmed)
	assert.Contains(t, err.Error(), "--yes")

	out, err := h.run(db, "start", "job-1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "in progress")
	assert.NotNil(t, f.job("job-1").StartedAt)

	_, err = h.run(db, "receive", "job-1", "-m", "pix")
	require.ErrorIs(t, err, lifecycle.ErrTransitionNotAllowed)

	out, err = h.run(db, "complete", "job-1")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	_, err = h.run(db, "receive", "job-1", "-m", "cheque")
	require.ErrorIs(t, err, lifecycle.ErrInvalidPaymentMethod)

	out, err = h.run(db, "receive", "job-1", "-m", "pix", "--receipt", "E2E-1")
	require.NoError(t, err)
	assert.Contains(t, out, "transaction tx-job-1: R$ 1200.00")
	require.Equal(t, 1, f.transactions("job-1"))

	_, err = h.run(db, "receive", "job-1", "-m", "pix")
	require.ErrorIs(t, err, lifecycle.ErrAlreadyReceived)
	assert.Equal(t, 1, f.transactions("job-1"))

	out, err = h.run(db, "show", "job-1")
	require.NoError(t, err)
	assert.Contains(t, out, "received")
}

func TestLogout(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)
	_, err := h.run(db, "login", "--team", teamID, "--password", password)
	require.NoError(t, err)

	out, err := h.run(db, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = h.run(db, "jobs")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestNavigate_DesktopOpensWebSearch(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)
	_, err := h.run(db, "login", "--team", teamID, "--password", password)
	require.NoError(t, err)

	out, err := h.run(db, "navigate", "job-2")
	require.NoError(t, err)
	require.Len(t, h.opened, 1)
	assert.True(t, strings.HasPrefix(h.opened[0], "https://www.google.com/maps/search/"), h.opened[0])
	assert.Contains(t, out, "opened "+h.opened[0])
	assert.Contains(t, out, navigation.CauseDesktop.Explanation())

	_, err = h.run(db, "navigate", "job-9")
	assert.ErrorIs(t, err, lifecycle.ErrJobNotFound)
}

func TestBoardModel(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)
	var out bytes.Buffer
	app := h.app(db, &out)
	ctx := context.Background()

	_, err := h.run(db, "login", "--team", teamID, "--password", password)
	require.NoError(t, err)
	s, err := app.session(ctx)
	require.NoError(t, err)
	require.True(t, app.Sync.IsOpen())

	notices := notify.NewChannel(4)
	var m tea.Model = newBoardModel(ctx, app, s, notices)
	assert.Contains(t, m.View(), "EQUIPE NORTE")
	assert.Contains(t, m.View(), "Furo de estaca")

	t.Run("blur closes and focus reopens the channel", func(t *testing.T) {
		m, _ = m.Update(tea.BlurMsg{})
		assert.False(t, app.Sync.IsOpen())
		assert.Contains(t, m.View(), "paused")
		m, _ = m.Update(tea.FocusMsg{})
		assert.True(t, app.Sync.IsOpen())
	})

	t.Run("start asks before running", func(t *testing.T) {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
		assert.Contains(t, m.View(), `Start "Furo de estaca" now? (y/n)`)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
		assert.NotContains(t, m.View(), "now? (y/n)")

		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		require.NotNil(t, cmd)
		msg := cmd()
		done, ok := msg.(commandDoneMsg)
		require.True(t, ok)
		require.NoError(t, done.err)
		m, _ = m.Update(msg)
		job, _ := app.Board.Get("job-1")
		assert.Equal(t, entities.WorkOrderStatusInProgress, job.Status)
		assert.Contains(t, m.View(), "in progress")
	})

	t.Run("notices are shown", func(t *testing.T) {
		m, _ = m.Update(noticeMsg(notify.Info("1 new work order")))
		assert.Contains(t, m.View(), "1 new work order")
	})

	t.Run("quit", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

// silentProvider starts watches that never report anything.
type silentProvider struct{}

type silentWatch struct{}

func (silentProvider) Watch(context.Context, navigation.WatchOptions) (navigation.Watch, error) {
	return silentWatch{}, nil
}

func (silentWatch) Fixes() <-chan navigation.Position { return nil }
func (silentWatch) Errors() <-chan error              { return nil }
func (silentWatch) Stop()                             {}

func TestBoardModel_EscSkipsLocationWait(t *testing.T) {
	h, _ := newHarness(t)
	h.cfg.Platform = "android"
	db := testutil.NewTestDB(t)
	var out bytes.Buffer
	app := h.app(db, &out)
	app.Location = silentProvider{}
	ctx := context.Background()

	_, err := h.run(db, "login", "--team", teamID, "--password", password)
	require.NoError(t, err)
	s, err := app.session(ctx)
	require.NoError(t, err)

	var m tea.Model = newBoardModel(ctx, app, s, notify.NewChannel(4))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "esc to skip")

	// a second press while locating does not start another watch
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Nil(t, again)

	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	var msg tea.Msg
	select {
	case msg = <-result:
	case <-time.After(5 * time.Second):
		t.Fatal("navigation still waiting for a position after esc")
	}
	done, ok := msg.(commandDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	m, _ = m.Update(msg)
	assert.NotContains(t, m.View(), "esc to skip")
	assert.Contains(t, out.String(), navigation.CauseSkipped.Explanation())
	require.NotEmpty(t, h.opened)
	assert.NotContains(t, h.opened[0], "origin", "a skipped wait opens the destination only")
}

func TestLogin_SaveTeamWritesConfig(t *testing.T) {
	h, _ := newHarness(t)
	db := testutil.NewTestDB(t)

	_, err := h.run(db, "login", "--team", teamID, "--password", password, "--save-team")
	require.ErrorIs(t, err, errNoConfigPath)

	h.configPath = filepath.Join(t.TempDir(), "fieldops", "config.yaml")
	out, err := h.run(db, "login", "--team", teamID, "--password", password, "--save-team")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved team "+teamID)

	saved, err := config.Load(h.configPath, "")
	require.NoError(t, err)
	assert.Equal(t, teamID, saved.Team)
	assert.Equal(t, h.cfg.APIURL, saved.APIURL)

	data, err := os.ReadFile(h.configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), password)
}
