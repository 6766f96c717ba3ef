package controls

import (
	"github.com/google/uuid"
	"github.com/vhls-cli/vhls/playback"
)

type dragTarget int

const (
	dragTimeline dragTarget = iota
	dragVolume
)

// DragSession owns the global pointer listeners for one drag. The listeners
// exist exactly as long as the session.
type DragSession struct {
	id         string
	target     dragTarget
	bounds     Rect
	removeMove func()
	removeUp   func()
}

func (d *DragSession) release() {
	d.removeMove()
	d.removeUp()
}

// fraction maps p onto the session's widget: horizontal for the timeline,
// inverted vertical for the volume slider.
func (d *DragSession) fraction(p Point) float64 {
	if d.target == dragVolume {
		if d.bounds.Height <= 0 {
			return 0
		}
		return playback.Clamp(1-(p.Y-d.bounds.Y)/d.bounds.Height, 0, 1)
	}
	if d.bounds.Width <= 0 {
		return 0
	}
	return playback.Clamp((p.X-d.bounds.X)/d.bounds.Width, 0, 1)
}

// TimelineDown starts a scrubbing session at p on a timeline with the given
// bounds and seeks there immediately. Every later global pointer move seeks
// live; the global pointer release ends the session.
func (s *Surface) TimelineDown(p Point, bounds Rect) {
	s.beginDrag(dragTimeline, p, bounds)
}

// VolumeDown starts a volume drag at p on a vertical slider.
func (s *Surface) VolumeDown(p Point, bounds Rect) {
	s.beginDrag(dragVolume, p, bounds)
}

func (s *Surface) beginDrag(target dragTarget, p Point, bounds Rect) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.activity()

	// A session whose release was never seen is replaced, not stacked.
	if s.drag != nil {
		s.drag.release()
		s.drag = nil
	}

	d := &DragSession{id: uuid.NewString(), target: target, bounds: bounds}
	d.removeMove = s.cfg.Input.AddPointerMove(func(p Point) { s.dragMove(d, p) })
	d.removeUp = s.cfg.Input.AddPointerUp(func(p Point) { s.dragEnd(d, p) })
	s.drag = d
	s.mu.Unlock()

	s.logger.WithField("drag", d.id).Debug("drag session started")
	s.dragApply(d, p)
}

func (s *Surface) dragMove(d *DragSession, p Point) {
	s.mu.Lock()
	live := !s.destroyed && s.drag == d
	if live {
		s.activity()
	}
	s.mu.Unlock()

	if live {
		s.dragApply(d, p)
	}
}

func (s *Surface) dragEnd(d *DragSession, _ Point) {
	s.mu.Lock()
	if s.destroyed || s.drag != d {
		s.mu.Unlock()
		return
	}
	d.release()
	s.drag = nil
	s.mu.Unlock()

	s.logger.WithField("drag", d.id).Debug("drag session ended")
	s.render()
}

func (s *Surface) dragApply(d *DragSession, p Point) {
	f := d.fraction(p)
	if d.target == dragVolume {
		s.setVolume(f)
		return
	}
	duration := s.transport.State().Duration
	s.do("seek", func() error { return s.transport.Seek(f * duration) })
}

// Dragging reports whether a drag session is open.
func (s *Surface) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag != nil
}
