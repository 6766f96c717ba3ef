package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/style"
)

// keymap adds the host's own bindings to the surface's.
type keymap struct {
	quit, help, openPoster key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		openPoster: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp(style.Fg(color.Orange)("o"), style.Fg(color.Orange)("open poster")),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return append(controls.Keys.ShortHelp(), k.help, k.quit)
}

func (k *keymap) FullHelp() [][]key.Binding {
	return append(controls.Keys.FullHelp(), []key.Binding{k.openPoster, k.help, k.quit})
}
