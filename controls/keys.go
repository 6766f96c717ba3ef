package controls

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the keyboard bindings of the surface.
type KeyMap struct {
	Toggle     key.Binding
	Mute       key.Binding
	Fullscreen key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
}

var Keys = KeyMap{
	Toggle:     key.NewBinding(key.WithKeys(" ", "k"), key.WithHelp("space", "play/pause")),
	Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
	Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
	SeekBack:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "back")),
	SeekFwd:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "forward")),
	VolumeUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "volume up")),
	VolumeDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "volume down")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SeekBack, k.SeekFwd, k.Mute, k.Fullscreen}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Mute, k.Fullscreen},
		{k.SeekBack, k.SeekFwd, k.VolumeUp, k.VolumeDown},
	}
}

// keyName adapts a bubbletea key name to key.Matches.
type keyName string

func (k keyName) String() string { return string(k) }

// Key handles a key press by name (as reported by bubbletea's KeyMsg.String)
// and reports whether it was bound. Every key press counts as activity,
// bound or not. A destroyed surface ignores keys.
func (s *Surface) Key(name string) bool {
	if !s.withActivity() {
		return false
	}

	k := keyName(name)
	var action func() error
	switch st := s.transport.State(); {
	case key.Matches(k, Keys.Toggle):
		action = s.transport.Toggle
	case key.Matches(k, Keys.Mute):
		action = s.transport.ToggleMute
	case key.Matches(k, Keys.Fullscreen):
		action = s.transport.ToggleFullscreen
	case key.Matches(k, Keys.SeekBack):
		action = func() error { return s.transport.Seek(st.CurrentTime - s.cfg.SeekStep) }
	case key.Matches(k, Keys.SeekFwd):
		action = func() error { return s.transport.Seek(st.CurrentTime + s.cfg.SeekStep) }
	case key.Matches(k, Keys.VolumeUp):
		action = func() error { return s.transport.SetVolume(st.Volume + s.cfg.VolumeStep) }
	case key.Matches(k, Keys.VolumeDown):
		action = func() error { return s.transport.SetVolume(st.Volume - s.cfg.VolumeStep) }
	default:
		s.render()
		return false
	}

	s.do(name, action)
	return true
}
