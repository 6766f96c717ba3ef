// Package controls implements the interactive control surface: hover and
// auto-hide timing, drag-seek, the volume slider, keyboard bindings and the
// UIState snapshot a renderer binds to.
package controls

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/key"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/playback"
)

const (
	taskHover    = "hover"
	taskAutoHide = "autohide"
)

// Transport is the part of the playback controller the surface drives.
type Transport interface {
	State() playback.State
	Toggle() error
	Seek(t float64) error
	SetVolume(v float64) error
	SetMuted(muted bool) error
	ToggleMute() error
	ToggleFullscreen() error
	On(kind playback.EventKind, h playback.Handler) playback.ListenerID
	Off(kind playback.EventKind, id playback.ListenerID)
}

// Config tunes a Surface. Zero durations and steps fall back to defaults.
type Config struct {
	HoverDebounce time.Duration
	AutoHide      time.Duration
	SeekStep      float64
	VolumeStep    float64
	ShowControls  bool

	Clock    clock.Clock
	Input    GlobalInput
	Renderer Renderer
	Logger   *logrus.Entry
}

// ConfigFromViper reads the controls.* settings.
func ConfigFromViper() Config {
	return Config{
		HoverDebounce: time.Duration(viper.GetInt(key.ControlsHoverDebounceMs)) * time.Millisecond,
		AutoHide:      time.Duration(viper.GetInt(key.ControlsAutoHideMs)) * time.Millisecond,
		SeekStep:      viper.GetFloat64(key.ControlsSeekStepSeconds),
		VolumeStep:    viper.GetFloat64(key.ControlsVolumeStep),
		ShowControls:  viper.GetBool(key.PlayerShowControls),
	}
}

func (c *Config) defaults() {
	if c.HoverDebounce <= 0 {
		c.HoverDebounce = 100 * time.Millisecond
	}
	if c.AutoHide <= 0 {
		c.AutoHide = 3000 * time.Millisecond
	}
	if c.SeekStep <= 0 {
		c.SeekStep = 5
	}
	if c.VolumeStep <= 0 {
		c.VolumeStep = 0.1
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Input == nil {
		c.Input = NewInputHub()
	}
	if c.Logger == nil {
		c.Logger = log.With(logrus.Fields{"component": "controls"})
	}
}

type subscription struct {
	kind playback.EventKind
	id   playback.ListenerID
}

// Surface is one control surface bound to a Transport. Its methods are the
// input side (pointer, keyboard, external notifications); its output is the
// Renderer. Create it with New and tear it down with Destroy.
type Surface struct {
	cfg       Config
	transport Transport
	sched     *Scheduler
	logger    *logrus.Entry

	mu        sync.Mutex
	state     playback.State
	hover     HoverMode
	drag      *DragSession
	notice    string
	subs      []subscription
	destroyed bool

	renderMu sync.Mutex
	last     UIState
	rendered bool
}

// New binds a surface to t and renders the initial state.
func New(t Transport, cfg Config) *Surface {
	cfg.defaults()
	s := &Surface{
		cfg:       cfg,
		transport: t,
		sched:     NewScheduler(cfg.Clock),
		logger:    cfg.Logger,
		state:     t.State(),
		hover:     HoverInactive,
	}

	for _, kind := range []playback.EventKind{
		playback.EventLoadStart,
		playback.EventLoadedMetadata,
		playback.EventCanPlay,
		playback.EventPlay,
		playback.EventPause,
		playback.EventWaiting,
		playback.EventTimeUpdate,
		playback.EventDurationChange,
		playback.EventProgress,
		playback.EventEnded,
		playback.EventVolumeChange,
		playback.EventFullscreenChange,
		playback.EventError,
	} {
		s.subs = append(s.subs, subscription{kind: kind, id: t.On(kind, s.onPlayback)})
	}

	s.render()
	return s
}

func (s *Surface) onPlayback(ev playback.Event) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}

	wasPlaying := s.state.Status == playback.StatusPlaying
	s.state = ev.State

	switch ev.Kind {
	case playback.EventError:
		if ev.Err != nil {
			s.notice = ev.Err.Message
		}
	case playback.EventLoadStart:
		s.notice = ""
	}

	playing := s.state.Status == playback.StatusPlaying
	switch {
	case playing && !wasPlaying:
		s.armAutoHide()
	case !playing:
		s.sched.Cancel(taskAutoHide)
	}
	s.mu.Unlock()

	s.render()
}

// armAutoHide (re)starts the auto-hide countdown. s.mu must be held.
func (s *Surface) armAutoHide() {
	s.sched.Schedule(taskAutoHide, s.cfg.AutoHide, s.onAutoHide)
}

func (s *Surface) onAutoHide() {
	s.mu.Lock()
	if s.destroyed || s.state.Status != playback.StatusPlaying {
		s.mu.Unlock()
		return
	}
	s.hover = HoverPendingInactive
	s.sched.Schedule(taskHover, s.cfg.HoverDebounce, s.onHoverTimeout)
	s.mu.Unlock()

	s.render()
}

func (s *Surface) onHoverTimeout() {
	s.mu.Lock()
	if s.destroyed || s.hover != HoverPendingInactive {
		s.mu.Unlock()
		return
	}
	s.hover = HoverInactive
	s.mu.Unlock()

	s.render()
}

// activity marks the pointer as present and restarts auto-hide while
// playing. s.mu must be held.
func (s *Surface) activity() {
	s.sched.Cancel(taskHover)
	s.hover = HoverActive
	if s.state.Status == playback.StatusPlaying {
		s.armAutoHide()
	}
}

func (s *Surface) withActivity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return false
	}
	s.activity()
	return true
}

// PointerEnter is called when the pointer enters the container.
func (s *Surface) PointerEnter() {
	if s.withActivity() {
		s.render()
	}
}

// PointerMove is called for pointer motion inside the container.
func (s *Surface) PointerMove() {
	if s.withActivity() {
		s.render()
	}
}

// PointerLeave starts the hover debounce; re-entering before it fires
// keeps the surface active.
func (s *Surface) PointerLeave() {
	s.mu.Lock()
	if s.destroyed || s.hover == HoverInactive {
		s.mu.Unlock()
		return
	}
	s.hover = HoverPendingInactive
	s.sched.Schedule(taskHover, s.cfg.HoverDebounce, s.onHoverTimeout)
	s.mu.Unlock()

	s.render()
}

// Click toggles playback, as a click on the container or the play button.
func (s *Surface) Click() {
	if !s.withActivity() {
		return
	}
	s.do("toggle", s.transport.Toggle)
}

// MuteButton toggles mute.
func (s *Surface) MuteButton() {
	if !s.withActivity() {
		return
	}
	s.do("mute", s.transport.ToggleMute)
}

// FullscreenButton asks the transport to toggle fullscreen.
func (s *Surface) FullscreenButton() {
	if !s.withActivity() {
		return
	}
	s.do("fullscreen", s.transport.ToggleFullscreen)
}

// VolumeAt sets the volume from a press at offsetY within a vertical slider
// of the given height, top being 1, and unmutes.
func (s *Surface) VolumeAt(offsetY, height float64) {
	if height <= 0 || !s.withActivity() {
		return
	}
	s.setVolume(1 - offsetY/height)
}

func (s *Surface) setVolume(v float64) {
	s.do("volume", func() error {
		if err := s.transport.SetVolume(v); err != nil {
			return err
		}
		return s.transport.SetMuted(false)
	})
}

// do runs a transport command outside the surface lock and renders.
func (s *Surface) do(name string, fn func() error) {
	if err := fn(); err != nil {
		s.logger.Warnf("%s: %v", name, err)
	}
	s.render()
}

// State returns the current snapshot.
func (s *Surface) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot builds the UIState. s.mu must be held.
func (s *Surface) snapshot() UIState {
	st := s.state
	fill := st.Volume
	if st.Muted {
		fill = 0
	}
	return UIState{
		Status:       st.Status,
		Activated:    st.Activated,
		Hover:        s.hover,
		Muted:        st.Muted || st.Volume == 0,
		Fullscreen:   st.Fullscreen,
		Dragging:     s.drag != nil && s.drag.target == dragTimeline,
		ShowControls: s.cfg.ShowControls,
		CurrentTime:  FormatTime(st.CurrentTime),
		Duration:     FormatTime(st.Duration),
		Progress:     st.Progress(),
		Buffered:     st.BufferedFraction,
		Volume:       st.Volume,
		VolumeFill:   fill,
		Notice:       s.notice,
	}
}

// render hands a changed snapshot to the renderer.
func (s *Surface) render() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	ui := s.snapshot()
	s.mu.Unlock()

	if s.rendered && ui == s.last {
		return
	}
	s.last, s.rendered = ui, true

	if s.cfg.Renderer != nil {
		s.cfg.Renderer(ui)
	}
}

// Pending reports whether the named timer ("hover" or "autohide") is armed.
func (s *Surface) Pending(name string) bool {
	return s.sched.Pending(name)
}

// Destroy cancels every timer, ends any drag session and unsubscribes from
// the transport. No renderer call or state change happens after it returns.
func (s *Surface) Destroy() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.sched.Close()
	if s.drag != nil {
		s.drag.release()
		s.drag = nil
	}
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		s.transport.Off(sub.kind, sub.id)
	}
}
