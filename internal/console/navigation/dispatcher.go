// Package navigation turns a job site into a "take me there" action suited to
// the device: a native maps deep link with a web fallback, routed from the
// device position when one can be had in time.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/browser"
)

const DefaultFallbackDelay = 1500 * time.Millisecond

var (
	ErrNoDestination = errors.New("job has no address or coordinates")
	ErrNothingOpened = errors.New("no navigation link could be opened")
)

type Outcome string

const (
	OutcomeRoute           Outcome = "route"
	OutcomeDestinationOnly Outcome = "destination_only"
)

// Cause says why a route fell back to destination-only.
type Cause string

const (
	CauseNone                Cause = ""
	CauseDesktop             Cause = "desktop"
	CauseSkipped             Cause = "skipped"
	CausePermissionDenied    Cause = "permission_denied"
	CausePositionUnavailable Cause = "position_unavailable"
	CauseTimeout             Cause = "timeout"
)

var explanations = map[Cause]string{
	CauseDesktop:             "Desktop devices have no reliable position; opening the destination only.",
	CauseSkipped:             "Location skipped; opening the destination only.",
	CausePermissionDenied:    "Location permission was denied. Allow location access for routes from where you are; opening the destination only.",
	CausePositionUnavailable: "Your position could not be determined; opening the destination only.",
	CauseTimeout:             "Getting your position took too long; opening the destination only.",
}

func (c Cause) Explanation() string {
	return explanations[c]
}

// Opener hands a URI to the device.
type Opener interface {
	Open(uri string) error
}

// BrowserOpener opens URIs with the system handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(uri string) error {
	return browser.OpenURL(uri)
}

type OpenerFunc func(uri string) error

func (f OpenerFunc) Open(uri string) error { return f(uri) }

// Result describes what Navigate did.
type Result struct {
	Platform    Platform
	Outcome     Outcome
	Cause       Cause
	Explanation string
	Origin      *Position
	Attempted   []string
	Opened      string
}

type Dispatcher struct {
	platform Platform
	provider LocationProvider
	opener   Opener
	logger   *slog.Logger

	WatchTimeout  time.Duration
	FallbackDelay time.Duration
	// OnFix, if set, receives the first fix of every successful watch.
	OnFix func(ctx context.Context, p Position)

	sleep func(ctx context.Context, d time.Duration) error
}

func NewDispatcher(platform Platform, provider LocationProvider, opener Opener, logger *slog.Logger) *Dispatcher {
	if opener == nil {
		opener = BrowserOpener{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		platform:      platform,
		provider:      provider,
		opener:        opener,
		logger:        logger,
		WatchTimeout:  DefaultWatchTimeout,
		FallbackDelay: DefaultFallbackDelay,
		sleep:         sleepCtx,
	}
}

func (d *Dispatcher) Platform() Platform {
	return d.platform
}

// Navigate opens directions to dest. On a handheld platform it first watches
// for a fresh position, giving up on error, on timeout or when skip fires.
// A desktop never starts a watch.
func (d *Dispatcher) Navigate(ctx context.Context, dest Destination, skip <-chan struct{}) (Result, error) {
	res := Result{Platform: d.platform}
	if dest.Empty() {
		return res, ErrNoDestination
	}

	if !d.platform.Handheld() {
		res.Cause = CauseDesktop
	} else {
		origin, cause, err := d.locate(ctx, skip)
		if err != nil {
			return res, err
		}
		res.Origin, res.Cause = origin, cause
	}

	if res.Origin != nil {
		res.Outcome = OutcomeRoute
	} else {
		res.Outcome = OutcomeDestinationOnly
		res.Explanation = res.Cause.Explanation()
	}

	chain := Chain(d.platform, res.Origin, dest)
	return d.open(ctx, res, chain)
}

// locate runs one watch and stops it on every way out.
func (d *Dispatcher) locate(ctx context.Context, skip <-chan struct{}) (*Position, Cause, error) {
	if d.provider == nil {
		return nil, CausePositionUnavailable, nil
	}
	timeout := d.WatchTimeout
	if timeout <= 0 {
		timeout = DefaultWatchTimeout
	}

	w, err := d.provider.Watch(ctx, WatchOptions{Timeout: timeout, MaximumAge: 0, HighAccuracy: true})
	if err != nil {
		return nil, classify(err), nil
	}
	defer w.Stop()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p, ok := <-w.Fixes():
		if !ok {
			return nil, CausePositionUnavailable, nil
		}
		d.logger.Debug("location fix", "lat", p.Latitude, "lng", p.Longitude, "accuracy", p.Accuracy)
		if d.OnFix != nil {
			d.OnFix(ctx, p)
		}
		return &p, CauseNone, nil
	case err := <-w.Errors():
		d.logger.Info("location watch failed", "error", err)
		return nil, classify(err), nil
	case <-timer.C:
		d.logger.Info("location watch timed out", "after", timeout)
		return nil, CauseTimeout, nil
	case <-skip:
		return nil, CauseSkipped, nil
	case <-ctx.Done():
		return nil, CauseNone, ctx.Err()
	}
}

func (d *Dispatcher) open(ctx context.Context, res Result, chain []string) (Result, error) {
	for i, uri := range chain {
		if i > 0 {
			if err := d.sleep(ctx, d.FallbackDelay); err != nil {
				return res, err
			}
		}
		res.Attempted = append(res.Attempted, uri)
		if err := d.opener.Open(uri); err != nil {
			d.logger.Debug("navigation link refused", "uri", uri, "error", err)
			continue
		}
		res.Opened = uri
		d.logger.Info("navigation opened", "platform", d.platform, "outcome", res.Outcome, "uri", uri)
		return res, nil
	}
	return res, fmt.Errorf("%w: tried %d", ErrNothingOpened, len(chain))
}

func classify(err error) Cause {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return CausePermissionDenied
	case errors.Is(err, context.DeadlineExceeded):
		return CauseTimeout
	default:
		return CausePositionUnavailable
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
