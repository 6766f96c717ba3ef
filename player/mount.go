package player

import (
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/visibility"
)

// Mount is the host surface a player attaches to.
type Mount interface {
	// Render receives every UIState change.
	Render(ui controls.UIState)
	// SetPoster shows the poster until playback is activated.
	SetPoster(url string)
	// ShowError displays a visible failure notice.
	ShowError(title, message string)
	// Input is the global pointer surface for drag sessions. Nil gives the
	// surface a private hub.
	Input() controls.GlobalInput
	// Observer reports the visible ratio. Nil disables the visibility gate.
	Observer() visibility.Observer
}
