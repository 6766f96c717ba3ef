// Package playback turns engine notifications into the canonical playback
// state machine and exposes transport commands on top of an engine.Engine.
package playback

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/log"
)

// Controller owns the PlaybackState of one instance. It is safe for use from
// the engine's event goroutine and from callers at the same time; events are
// always emitted outside its lock.
type Controller struct {
	mu     sync.Mutex
	engine engine.Engine
	bus    *Bus
	logger *logrus.Entry

	state        State
	enginePaused bool
	hasMetadata  bool
	closed       bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the entry used for controller diagnostics.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Controller) { c.logger = entry }
}

// NewController binds to e and installs itself as its event handler.
func NewController(e engine.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine:       e,
		bus:          NewBus(),
		state:        State{Status: StatusIdle, Volume: 1},
		enginePaused: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.With(logrus.Fields{"component": "playback"})
	}

	e.OnEvent(c.handleEngineEvent)
	return c
}

// On subscribes h to kind.
func (c *Controller) On(kind EventKind, h Handler) ListenerID {
	return c.bus.On(kind, h)
}

// Off removes a subscription made with On.
func (c *Controller) Off(kind EventKind, id ListenerID) {
	c.bus.Off(kind, id)
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Paused reports the engine's own pause flag. It stays false while a playing
// stream is buffering and survives a reload.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enginePaused
}

func (c *Controller) CurrentTime() float64 { return c.State().CurrentTime }

func (c *Controller) Duration() float64 { return c.State().Duration }

func (c *Controller) BufferedFraction() float64 { return c.State().BufferedFraction }

func (c *Controller) Volume() float64 { return c.State().Volume }

func (c *Controller) Muted() bool { return c.State().Muted }

// Load starts a new load cycle for url. An engine failure moves the state to
// error, emits the error event and is returned.
func (c *Controller) Load(ctx context.Context, url string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.state.Status = StatusLoading
	c.state.CurrentTime = 0
	c.state.Duration = 0
	c.state.BufferedFraction = 0
	c.state.Activated = false
	c.hasMetadata = false
	loading := Event{Kind: EventLoadStart, State: c.state}
	c.mu.Unlock()

	c.bus.Emit(loading)

	if err := c.engine.Load(ctx, url); err != nil {
		c.Fail(err)
		return err
	}
	return nil
}

// Fail moves the state to error and emits it. It is used for failures that
// happen outside the engine, such as resolution.
func (c *Controller) Fail(err error) {
	pe, ok := err.(*PlaybackError)
	if !ok {
		pe = newPlaybackError(err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Status = StatusError
	ev := Event{Kind: EventError, State: c.state, Err: pe}
	c.mu.Unlock()

	c.logger.Errorf("playback error: %s", pe.Message)
	c.bus.Emit(ev)
}

// MarkLoading enters the loading state before a stream URL is known.
func (c *Controller) MarkLoading() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Status = StatusLoading
	ev := Event{Kind: EventLoadStart, State: c.state}
	c.mu.Unlock()

	c.bus.Emit(ev)
}

// Play resumes playback. From the ended state it restarts at the beginning.
func (c *Controller) Play() error {
	if c.State().Status == StatusEnded {
		if err := c.Seek(0); err != nil {
			return err
		}
	}
	return c.command("play", c.engine.Play)
}

func (c *Controller) Pause() error {
	return c.command("pause", c.engine.Pause)
}

// Toggle pauses while playing and plays otherwise.
func (c *Controller) Toggle() error {
	if c.State().Status == StatusPlaying {
		return c.Pause()
	}
	return c.Play()
}

// Seek moves to t clamped to [0, duration].
func (c *Controller) Seek(t float64) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	t = Clamp(t, 0, c.state.Duration)
	c.mu.Unlock()

	if err := c.engine.Seek(t); err != nil {
		return c.commandError("seek", err)
	}

	c.mu.Lock()
	c.state.CurrentTime = t
	ev := Event{Kind: EventTimeUpdate, State: c.state}
	c.mu.Unlock()

	c.bus.Emit(ev)
	return nil
}

// SetVolume stores clamp(v, 0, 1). It leaves the muted flag alone.
func (c *Controller) SetVolume(v float64) error {
	v = clampUnit(v)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.state.Volume = v
	ev := Event{Kind: EventVolumeChange, State: c.state}
	c.mu.Unlock()

	c.bus.Emit(ev)

	if err := c.engine.SetVolume(v); err != nil {
		return c.commandError("volume", err)
	}
	return nil
}

func (c *Controller) SetMuted(muted bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	changed := c.state.Muted != muted
	c.state.Muted = muted
	ev := Event{Kind: EventVolumeChange, State: c.state}
	c.mu.Unlock()

	if changed {
		c.bus.Emit(ev)
	}

	if err := c.engine.SetMuted(muted); err != nil {
		return c.commandError("mute", err)
	}
	return nil
}

func (c *Controller) ToggleMute() error {
	return c.SetMuted(!c.State().Muted)
}

// ToggleFullscreen asks the engine to flip fullscreen. The state follows the
// engine's (or host's) fullscreen notification, not the request.
func (c *Controller) ToggleFullscreen() error {
	want := !c.State().Fullscreen
	if err := c.engine.SetFullscreen(want); err != nil {
		return c.commandError("fullscreen", err)
	}
	return nil
}

// FullscreenChanged records an external fullscreen notification.
func (c *Controller) FullscreenChanged(fullscreen bool) {
	c.mu.Lock()
	if c.closed || c.state.Fullscreen == fullscreen {
		c.mu.Unlock()
		return
	}
	c.state.Fullscreen = fullscreen
	ev := Event{Kind: EventFullscreenChange, State: c.state}
	c.mu.Unlock()

	c.bus.Emit(ev)
}

// Close detaches from the engine and drops every subscription. Later engine
// events and commands are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.engine.OnEvent(nil)
	c.bus.Clear()
}

func (c *Controller) command(name string, fn func() error) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil
	}

	if err := fn(); err != nil {
		return c.commandError(name, err)
	}
	return nil
}

func (c *Controller) commandError(name string, err error) error {
	c.logger.Warnf("%s: %v", name, err)
	return newPlaybackError(err)
}
