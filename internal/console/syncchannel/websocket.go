package syncchannel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fieldops/internal/adapter/realtime"
	"fieldops/internal/console/backend"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	readWait         = 60 * time.Second
)

// WebsocketTransport reads the backend job stream over a websocket and
// reconnects with exponential backoff when the connection drops.
type WebsocketTransport struct {
	client *backend.Client
	dialer websocket.Dialer
	logger *slog.Logger

	// NewBackOff builds the reconnect policy of one Run call.
	NewBackOff func() backoff.BackOff
}

func NewWebsocketTransport(client *backend.Client, logger *slog.Logger) *WebsocketTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebsocketTransport{
		client:     client,
		dialer:     websocket.Dialer{HandshakeTimeout: handshakeTimeout},
		logger:     logger,
		NewBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Run blocks until ctx is cancelled or the backend rejects the credential.
func (t *WebsocketTransport) Run(ctx context.Context, cred backend.Credential, handle func(realtime.JobsMessage)) error {
	b := t.NewBackOff()
	op := func() error {
		err := t.session(ctx, cred, handle, b.Reset)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		t.logger.Debug("push reconnect scheduled", "team_id", cred.TeamID, "in", next, "error", err)
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}

// session runs one connection until it fails. connected is called once the
// handshake succeeded.
func (t *WebsocketTransport) session(ctx context.Context, cred backend.Credential, handle func(realtime.JobsMessage), connected func()) error {
	conn, resp, err := t.dialer.DialContext(ctx, t.client.StreamURL(cred.TeamID), backend.StreamHeaders(cred))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return backoff.Permanent(&backend.APIError{StatusCode: resp.StatusCode, Code: "INVALID_CREDENTIALS"})
		}
		return fmt.Errorf("websocket connect: %w", err)
	}
	defer conn.Close()
	connected()
	t.logger.Debug("push connected", "team_id", cred.TeamID)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		var msg realtime.JobsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("websocket read: %w", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		handle(msg)
	}
}
