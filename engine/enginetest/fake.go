// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"context"
	"errors"
	"sync"

	"github.com/vhls-cli/vhls/engine"
)

// Fake records commands and lets tests inject engine events synchronously.
// Commands do not emit events on their own unless Echo is set.
type Fake struct {
	mu       sync.Mutex
	handler  engine.Handler
	calls    []string
	loaded   string
	volume   float64
	muted    bool
	seekedTo float64
	closed   bool

	// Echo makes Play and Pause emit the matching event, like a real engine.
	Echo bool
	// LoadErr, when set, is returned by Load.
	LoadErr error
	// CommandErr, when set, is returned by every transport command.
	CommandErr error
}

var _ engine.Engine = (*Fake)(nil)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("fake engine closed")

func New() *Fake {
	return &Fake{volume: 1}
}

func (f *Fake) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.calls = append(f.calls, call)
	return f.CommandErr
}

func (f *Fake) Load(_ context.Context, url string) error {
	if err := f.record("load"); err != nil {
		return err
	}
	f.mu.Lock()
	f.loaded = url
	err := f.LoadErr
	f.mu.Unlock()
	return err
}

func (f *Fake) Play() error {
	if err := f.record("play"); err != nil {
		return err
	}
	if f.Echo {
		f.Emit(engine.Event{Kind: engine.EventPlay})
	}
	return nil
}

func (f *Fake) Pause() error {
	if err := f.record("pause"); err != nil {
		return err
	}
	if f.Echo {
		f.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
	}
	return nil
}

func (f *Fake) Seek(seconds float64) error {
	if err := f.record("seek"); err != nil {
		return err
	}
	f.mu.Lock()
	f.seekedTo = seconds
	f.mu.Unlock()
	return nil
}

func (f *Fake) SetVolume(level float64) error {
	if err := f.record("volume"); err != nil {
		return err
	}
	f.mu.Lock()
	f.volume = level
	f.mu.Unlock()
	return nil
}

func (f *Fake) SetMuted(muted bool) error {
	if err := f.record("mute"); err != nil {
		return err
	}
	f.mu.Lock()
	f.muted = muted
	f.mu.Unlock()
	return nil
}

func (f *Fake) SetFullscreen(bool) error {
	return f.record("fullscreen")
}

func (f *Fake) OnEvent(h engine.Handler) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.handler = nil
	return nil
}

// Emit delivers ev to the installed handler on the caller's goroutine.
func (f *Fake) Emit(ev engine.Event) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h(ev)
	}
}

// Calls returns the recorded command names in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many times call was recorded.
func (f *Fake) Count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *Fake) Loaded() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *Fake) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *Fake) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

func (f *Fake) SeekedTo() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seekedTo
}

func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
