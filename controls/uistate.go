package controls

import (
	"strconv"

	"github.com/vhls-cli/vhls/playback"
)

// HoverMode is the pointer-presence state of the container.
type HoverMode int

const (
	HoverInactive HoverMode = iota
	HoverPendingInactive
	HoverActive
)

func (m HoverMode) String() string {
	switch m {
	case HoverActive:
		return "active"
	case HoverPendingInactive:
		return "pending-inactive"
	default:
		return "inactive"
	}
}

// UIState is the immutable snapshot handed to the renderer on every change.
type UIState struct {
	Status       playback.Status
	Activated    bool
	Hover        HoverMode
	Muted        bool
	Fullscreen   bool
	Dragging     bool
	ShowControls bool

	CurrentTime string
	Duration    string
	Progress    float64
	Buffered    float64
	Volume      float64
	// VolumeFill is the slider fill, 0 while muted.
	VolumeFill float64

	// Notice is the visible failure message, empty when none.
	Notice string
}

// Renderer receives every new UIState.
type Renderer func(UIState)

// Attribute names exposed on the container.
const (
	AttrStatus     = "status"
	AttrActivated  = "activated"
	AttrHover      = "hover"
	AttrMuted      = "muted"
	AttrFullscreen = "fullscreen"
	AttrDragging   = "dragging"
)

// Attributes returns the declarative key/value view of the state. The ended
// status is presented as paused.
func (u UIState) Attributes() map[string]string {
	status := u.Status
	if status == playback.StatusEnded {
		status = playback.StatusPaused
	}
	return map[string]string{
		AttrStatus:     status.String(),
		AttrActivated:  strconv.FormatBool(u.Activated),
		AttrHover:      u.Hover.String(),
		AttrMuted:      strconv.FormatBool(u.Muted),
		AttrFullscreen: strconv.FormatBool(u.Fullscreen),
		AttrDragging:   strconv.FormatBool(u.Dragging),
	}
}

// ControlsVisible reports whether a renderer should draw the controls.
func (u UIState) ControlsVisible() bool {
	if !u.ShowControls {
		return false
	}
	if u.Status != playback.StatusPlaying || u.Dragging {
		return true
	}
	return u.Hover != HoverInactive
}
