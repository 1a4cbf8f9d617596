// Package auth owns the console session: the credential exchange, the
// on-device cache, and the push channel that lives as long as the session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fieldops/internal/console/backend"
	"fieldops/internal/console/board"
	"fieldops/internal/console/notify"
	"fieldops/internal/domain/entities"
)

var (
	ErrNoSession         = errors.New("no active session")
	ErrMissingCredential = errors.New("team id and password are required")
)

// Session is the authenticated team. Its Credential is what every mutating
// call re-presents to the backend.
type Session struct {
	Team            entities.Team
	Credential      backend.Credential
	AuthenticatedAt time.Time
}

type Exchanger interface {
	ExchangeCredential(ctx context.Context, cred backend.Credential) (entities.Team, []entities.WorkOrder, error)
}

type SessionStore interface {
	Store(ctx context.Context, teamID, password string) error
	Restore(ctx context.Context, teamID string) (string, bool, error)
	Latest(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context, teamID string) error
}

type Channel interface {
	Open(ctx context.Context, cred backend.Credential) error
	Stop()
}

// Options tunes one Authenticate call.
type Options struct {
	// Silent suppresses user notices, used when restoring a cached session.
	Silent bool
}

type Controller struct {
	api      Exchanger
	store    SessionStore
	channel  Channel
	board    *board.Board
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	seq         uint64
	lastSuccess uint64
	active      *Session
}

func NewController(api Exchanger, store SessionStore, channel Channel, b *board.Board, notifier notify.Notifier, logger *slog.Logger) *Controller {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:      api,
		store:    store,
		channel:  channel,
		board:    b,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Authenticate exchanges the credential and, on success, installs the job
// snapshot, caches the credential and opens the push channel. When calls
// overlap, the one that completes last decides the session.
func (c *Controller) Authenticate(ctx context.Context, teamID, password string, opts Options) (Session, error) {
	cred := backend.Credential{TeamID: strings.TrimSpace(teamID), Password: password}
	if cred.TeamID == "" || cred.Password == "" {
		if !opts.Silent {
			c.notifier.Notify(notify.Error(ErrMissingCredential.Error()))
		}
		return Session{}, ErrMissingCredential
	}

	c.mu.Lock()
	c.seq++
	attempt := c.seq
	c.mu.Unlock()

	c.logger.Debug("credential exchange", "team_id", cred.TeamID, "attempt", attempt)
	team, jobs, err := c.api.ExchangeCredential(ctx, cred)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.failLocked(ctx, cred.TeamID, attempt, err, opts)
		return Session{}, err
	}

	s := Session{Team: team, Credential: cred, AuthenticatedAt: c.now()}
	c.board.Replace(jobs)
	if err := c.store.Store(ctx, cred.TeamID, cred.Password); err != nil {
		c.logger.Warn("session cache write failed", "team_id", cred.TeamID, "error", err)
	}
	if err := c.channel.Open(ctx, cred); err != nil {
		c.logger.Warn("sync channel open failed", "team_id", cred.TeamID, "error", err)
	}
	c.active = &s
	if attempt > c.lastSuccess {
		c.lastSuccess = attempt
	}
	c.logger.Info("authenticated", "team_id", cred.TeamID, "jobs", len(jobs))
	if !opts.Silent {
		c.notifier.Notify(notify.Info("Logged in as " + displayName(team)))
	}
	return s, nil
}

func (c *Controller) failLocked(ctx context.Context, teamID string, attempt uint64, err error, opts Options) {
	c.logger.Info("credential exchange failed", "team_id", teamID, "error", err)
	if c.lastSuccess > attempt {
		// a newer login already won; this stale failure changes nothing
		return
	}
	if err := c.store.Clear(ctx, teamID); err != nil {
		c.logger.Warn("session cache purge failed", "team_id", teamID, "error", err)
	}
	if backend.IsUnauthorized(err) && c.active != nil && c.active.Credential.TeamID == teamID {
		c.endLocked()
	}
	if !opts.Silent {
		c.notifier.Notify(notify.Error(loginFailureMessage(err)))
	}
}

// RestoreOnLoad re-authenticates silently from the session cache. teamID may
// be empty, in which case the most recently cached team is used. A missing or
// stale cache entry yields ErrNoSession without any network call.
func (c *Controller) RestoreOnLoad(ctx context.Context, teamID string) (Session, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		latest, ok, err := c.store.Latest(ctx)
		if err != nil {
			return Session{}, err
		}
		if !ok {
			return Session{}, ErrNoSession
		}
		teamID = latest
	}

	password, ok, err := c.store.Restore(ctx, teamID)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		c.logger.Debug("no cached session", "team_id", teamID)
		return Session{}, ErrNoSession
	}

	s, err := c.Authenticate(ctx, teamID, password, Options{Silent: true})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	return s, nil
}

// Logout closes the channel and forgets the session and its cached credential.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ErrNoSession
	}
	teamID := c.active.Credential.TeamID
	c.endLocked()
	if err := c.store.Clear(ctx, teamID); err != nil {
		return err
	}
	c.logger.Info("logged out", "team_id", teamID)
	return nil
}

// Active returns the current session.
func (c *Controller) Active() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Session{}, false
	}
	return *c.active, true
}

func (c *Controller) endLocked() {
	c.channel.Stop()
	c.board.Reset()
	c.active = nil
}

func displayName(t entities.Team) string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

func loginFailureMessage(err error) string {
	if backend.IsUnauthorized(err) {
		return "Invalid team credentials"
	}
	return "Login failed: " + err.Error()
}
