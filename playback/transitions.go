package playback

import (
	"math"

	"github.com/vhls-cli/vhls/engine"
)

// handleEngineEvent applies one engine notification and emits the matching
// normalized event. Play and pause are dropped when the engine's paused flag
// did not change.
func (c *Controller) handleEngineEvent(ev engine.Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	out, ok := c.apply(ev)
	if ok {
		out.State = c.state
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	if out.Kind == EventError {
		c.logger.Errorf("engine error: %s", out.Err.Message)
	}
	c.bus.Emit(out)
}

// apply mutates the state for ev. c.mu must be held.
func (c *Controller) apply(ev engine.Event) (Event, bool) {
	s := &c.state

	switch ev.Kind {
	case engine.EventLoadStart:
		return Event{}, false

	case engine.EventLoadedMetadata:
		c.hasMetadata = true
		if s.Status == StatusLoading {
			s.Status = StatusReady
		}
		return Event{Kind: EventLoadedMetadata}, true

	case engine.EventCanPlay:
		switch s.Status {
		case StatusLoading:
			switch {
			case !c.hasMetadata:
				s.Status = StatusReady
			case c.enginePaused:
				s.Status = StatusPaused
			default:
				s.Status = StatusPlaying
				s.Activated = true
			}
		case StatusReady:
			if !c.enginePaused {
				s.Status = StatusPlaying
				s.Activated = true
			}
		}
		return Event{Kind: EventCanPlay}, true

	case engine.EventWaiting:
		if s.Status == StatusPlaying {
			s.Status = StatusLoading
		}
		return Event{Kind: EventWaiting}, true

	case engine.EventPlay:
		if !c.enginePaused {
			return Event{}, false
		}
		c.enginePaused = false
		switch s.Status {
		case StatusReady, StatusPaused, StatusEnded:
			s.Status = StatusPlaying
			s.Activated = true
		}
		return Event{Kind: EventPlay}, true

	case engine.EventPause:
		if c.enginePaused {
			return Event{}, false
		}
		c.enginePaused = true
		if s.Status == StatusPlaying {
			s.Status = StatusPaused
		}
		return Event{Kind: EventPause}, true

	case engine.EventTimeUpdate:
		s.CurrentTime = ev.Value
		if s.Duration > 0 {
			s.CurrentTime = Clamp(ev.Value, 0, s.Duration)
		}
		return Event{Kind: EventTimeUpdate}, true

	case engine.EventDuration:
		s.Duration = Clamp(ev.Value, 0, math.Inf(1))
		return Event{Kind: EventDurationChange}, true

	case engine.EventBuffered:
		if s.Duration <= 0 {
			return Event{}, false
		}
		s.BufferedFraction = clampUnit(ev.Value / s.Duration)
		return Event{Kind: EventProgress}, true

	case engine.EventEnded:
		if s.Status == StatusPlaying || s.Status == StatusPaused {
			s.Status = StatusEnded
		}
		return Event{Kind: EventEnded}, true

	case engine.EventVolume:
		s.Volume = clampUnit(ev.Value)
		return Event{Kind: EventVolumeChange}, true

	case engine.EventMute:
		if s.Muted == ev.Flag {
			return Event{}, false
		}
		s.Muted = ev.Flag
		return Event{Kind: EventVolumeChange}, true

	case engine.EventFullscreen:
		if s.Fullscreen == ev.Flag {
			return Event{}, false
		}
		s.Fullscreen = ev.Flag
		return Event{Kind: EventFullscreenChange}, true

	case engine.EventError:
		s.Status = StatusError
		return Event{Kind: EventError, Err: newPlaybackError(ev.Err)}, true
	}

	return Event{}, false
}
