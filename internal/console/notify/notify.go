// Package notify carries one-shot user notices (toasts) from console
// components to whatever surface is showing them.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a transient, non-blocking message for the user.
type Notice struct {
	Level   Level
	Message string
}

func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s", n.Level, n.Message)
}

// Notifier shows notices. Implementations must not block the caller.
type Notifier interface {
	Notify(Notice)
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(Notice) {}

// Channel delivers notices on a buffered channel, dropping them when the
// buffer is full so a slow reader never stalls a writer.
type Channel struct {
	ch chan Notice
}

func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Notice, size)}
}

func (c *Channel) Notify(n Notice) {
	select {
	case c.ch <- n:
	default:
	}
}

func (c *Channel) C() <-chan Notice {
	return c.ch
}

// Recorder keeps every notice; used by tests and by one-shot CLI commands.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Writer prints each notice as one line.
type Writer struct {
	mu sync.Mutex
	W  io.Writer
}

func (w *Writer) Notify(n Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.W, n.String())
}

// Switch forwards to a target that can be replaced at runtime, e.g. when the
// console moves from one-shot commands to the live board.
type Switch struct {
	mu     sync.RWMutex
	target Notifier
}

func NewSwitch(target Notifier) *Switch {
	return &Switch{target: target}
}

func (s *Switch) Set(target Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
}

func (s *Switch) Notify(n Notice) {
	s.mu.RLock()
	t := s.target
	s.mu.RUnlock()
	if t != nil {
		t.Notify(n)
	}
}

func Info(msg string) Notice  { return Notice{Level: LevelInfo, Message: msg} }
func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg} }
