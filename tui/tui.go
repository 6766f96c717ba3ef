// Package tui hosts a player in the terminal: it renders the control
// surface, maps mouse and keyboard input onto it, and reports focus as
// visibility.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-multierror"
	"github.com/vhls-cli/vhls/player"
)

// Options configures the terminal host.
type Options struct {
	Player  player.Options
	Factory *player.Factory
}

// Run builds the player, runs the interface until the user quits and
// destroys the player.
func Run(options *Options) error {
	factory := options.Factory
	if factory == nil {
		factory = player.NewFactory()
	}

	m := newMount()
	p, err := factory.New(m, options.Player)
	if err != nil {
		return err
	}

	bubble := newBubble(m, p, options.Player.StreamInput)
	program := tea.NewProgram(
		bubble,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	m.attach(program.Send)

	var result *multierror.Error
	if _, err := program.Run(); err != nil {
		result = multierror.Append(result, err)
	}
	m.detach()
	if err := p.Destroy(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
