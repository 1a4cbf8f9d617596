package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fieldops/internal/console/auth"
	"fieldops/internal/console/backend"
	"fieldops/internal/console/board"
	"fieldops/internal/console/config"
	"fieldops/internal/console/lifecycle"
	"fieldops/internal/console/navigation"
	"fieldops/internal/console/notify"
	"fieldops/internal/console/sessioncache"
	"fieldops/internal/console/syncchannel"
	"fieldops/internal/domain/entities"
)

var errNotLoggedIn = errors.New("not logged in, run `fieldops login`")

// App holds the console components shared by every command.
type App struct {
	Config  config.Config
	Backend *backend.Client
	Board   *board.Board
	Auth    *auth.Controller
	Engine  *lifecycle.Engine
	Sync    *syncchannel.Manager
	Notices *notify.Switch
	Logger  *slog.Logger

	// Opener and Location back the navigation dispatcher.
	Opener   navigation.Opener
	Location navigation.LocationProvider

	// ConfigPath is where `login --save-team` writes the configuration.
	ConfigPath string

	IsInteractive func() bool
	In            io.Reader
	Out           io.Writer
}

// NewApp wires the console against the backend named in cfg and the local
// store db.
func NewApp(cfg config.Config, db *sql.DB, logger *slog.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	location, err := navigation.ParseStaticProvider(cfg.Location)
	if err != nil {
		return nil, err
	}

	client := backend.New(cfg.APIURL, cfg.Timeout)
	b := board.New()
	notices := notify.NewSwitch(&notify.Writer{W: out})
	channel := syncchannel.NewManager(syncchannel.NewWebsocketTransport(client, logger), b, notices, logger)
	cache := sessioncache.New(db)

	return &App{
		Config:        cfg,
		Backend:       client,
		Board:         b,
		Auth:          auth.NewController(client, cache, channel, b, notices, logger),
		Engine:        lifecycle.NewEngine(client, b, notices, logger),
		Sync:          channel,
		Notices:       notices,
		Logger:        logger,
		Opener:        navigation.BrowserOpener{},
		Location:      location,
		IsInteractive: func() bool { return false },
		In:            in,
		Out:           out,
	}, nil
}

// session returns the active session, restoring it from the cache if needed.
func (a *App) session(ctx context.Context) (auth.Session, error) {
	if s, ok := a.Auth.Active(); ok {
		return s, nil
	}
	s, err := a.Auth.RestoreOnLoad(ctx, a.Config.Team)
	if errors.Is(err, auth.ErrNoSession) {
		a.Logger.Debug("session restore failed", "error", err)
		return auth.Session{}, errNotLoggedIn
	}
	return s, err
}

// navigator builds a dispatcher for platform (empty means configured/detected).
func (a *App) navigator(platform string, s auth.Session) *navigation.Dispatcher {
	if platform == "" {
		platform = a.Config.Platform
	}
	d := navigation.NewDispatcher(navigation.CurrentPlatform(platform), a.Location, a.Opener, a.Logger)
	d.FallbackDelay = a.Config.FallbackDelay
	if a.Config.ReportFix {
		d.OnFix = func(ctx context.Context, p navigation.Position) {
			loc := entities.Location{Latitude: p.Latitude, Longitude: p.Longitude, CapturedAt: p.At}
			if err := a.Backend.ReportLocation(ctx, s.Credential, loc); err != nil {
				a.Logger.Warn("location report failed", "team_id", s.Credential.TeamID, "error", err)
			}
		}
	}
	return d
}

// Shutdown closes the push channel, if one was opened.
func (a *App) Shutdown() {
	a.Sync.Close()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
