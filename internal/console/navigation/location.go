package navigation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const DefaultWatchTimeout = 20 * time.Second

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Position is one location fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	At        time.Time
}

// WatchOptions mirrors what a device location API takes for a continuous watch.
type WatchOptions struct {
	Timeout      time.Duration
	MaximumAge   time.Duration
	HighAccuracy bool
}

// Watch is a running location watch. Stop must be safe to call more than once.
type Watch interface {
	Fixes() <-chan Position
	Errors() <-chan error
	Stop()
}

type LocationProvider interface {
	Watch(ctx context.Context, opts WatchOptions) (Watch, error)
}

// chanWatch is a Watch fed by its owner.
type chanWatch struct {
	fixes chan Position
	errs  chan error
	once  sync.Once
	done  chan struct{}
}

func newChanWatch() *chanWatch {
	return &chanWatch{fixes: make(chan Position, 1), errs: make(chan error, 1), done: make(chan struct{})}
}

func (w *chanWatch) Fixes() <-chan Position { return w.fixes }
func (w *chanWatch) Errors() <-chan error   { return w.errs }

func (w *chanWatch) Stop() {
	w.once.Do(func() { close(w.done) })
}

// StaticProvider reports a configured position, for devices without a
// location service (or for testing routes from a known point). A nil Position
// makes every watch fail with ErrPositionUnavailable.
type StaticProvider struct {
	Position *Position
	Err      error
}

func (p StaticProvider) Watch(_ context.Context, _ WatchOptions) (Watch, error) {
	w := newChanWatch()
	switch {
	case p.Err != nil:
		w.errs <- p.Err
	case p.Position == nil:
		w.errs <- ErrPositionUnavailable
	default:
		fix := *p.Position
		if fix.At.IsZero() {
			fix.At = time.Now()
		}
		w.fixes <- fix
	}
	return w, nil
}

// ParseStaticProvider reads "lat,lng". The value "denied" yields a provider error
// of ErrPermissionDenied, used to rehearse the fallback flow.
func ParseStaticProvider(s string) (StaticProvider, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return StaticProvider{}, nil
	case "denied":
		return StaticProvider{Err: ErrPermissionDenied}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return StaticProvider{}, fmt.Errorf("location %q: want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return StaticProvider{}, fmt.Errorf("location %q: bad latitude", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return StaticProvider{}, fmt.Errorf("location %q: bad longitude", s)
	}
	return StaticProvider{Position: &Position{Latitude: lat, Longitude: lng}}, nil
}
