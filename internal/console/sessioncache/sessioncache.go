// Package sessioncache keeps the team credential on the device so a reload
// does not re-prompt the crew within the validity window.
//
// The password is stored base64-encoded. That only keeps it from being read at
// a glance; it is not encryption.
package sessioncache

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TTL is how long a stored credential stays usable.
const TTL = 24 * time.Hour

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Cache is a SQLite-backed session cache.
type Cache struct {
	db  DBTX
	now func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(db DBTX, opts ...Option) *Cache {
	c := &Cache{db: db, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store writes the credential for teamID with the current timestamp.
func (c *Cache) Store(ctx context.Context, teamID, password string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return errors.New("session cache: empty team id")
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO session_cache (team_id, encoded_password, stored_at) VALUES (?, ?, ?)`,
		teamID, obfuscate(password), c.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Restore returns the stored password while it is younger than TTL. A stale
// record is deleted and reported as absent.
func (c *Cache) Restore(ctx context.Context, teamID string) (string, bool, error) {
	teamID = strings.TrimSpace(teamID)
	var encoded string
	var storedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT encoded_password, stored_at FROM session_cache WHERE team_id = ?`, teamID,
	).Scan(&encoded, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading session: %w", err)
	}

	if c.now().Sub(time.UnixMilli(storedAt)) >= TTL {
		if err := c.Clear(ctx, teamID); err != nil {
			return "", false, err
		}
		return "", false, nil
	}

	password, err := deobfuscate(encoded)
	if err != nil {
		// unreadable record, treat like a stale one
		if err := c.Clear(ctx, teamID); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return password, true, nil
}

// Latest returns the team id of the most recently stored record, if any.
func (c *Cache) Latest(ctx context.Context) (string, bool, error) {
	var teamID string
	err := c.db.QueryRowContext(ctx,
		`SELECT team_id FROM session_cache ORDER BY stored_at DESC LIMIT 1`,
	).Scan(&teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading latest session: %w", err)
	}
	return teamID, true, nil
}

// Clear removes the record for teamID. Missing records are not an error.
func (c *Cache) Clear(ctx context.Context, teamID string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM session_cache WHERE team_id = ?`, strings.TrimSpace(teamID)); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func obfuscate(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}

func deobfuscate(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
