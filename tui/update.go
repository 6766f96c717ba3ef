package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/internal/ui"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/open"
)

func (b *bubble) Init() tea.Cmd {
	return b.spinnerC.Tick
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.NotificationMsg, ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)
	case refreshMsg:
		b.mount.refreshed()
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		b.focused = true
		b.reportVisibility()
	case tea.BlurMsg:
		b.focused = false
		b.reportVisibility()
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	case tea.MouseMsg:
		b.handleMouse(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.quit):
		return tea.Quit
	case key.Matches(msg, b.keymap.help):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case key.Matches(msg, b.keymap.openPoster):
		poster := b.mount.snapshot().poster
		if poster == "" {
			return ui.Notify("no poster")
		}
		if err := open.Start(poster); err != nil {
			log.Warnf("open poster: %v", err)
			return ui.Notify("could not open poster")
		}
		return ui.Notify("poster opened")
	default:
		b.player.Surface().Key(msg.String())
	}
	return nil
}

func (b *bubble) handleMouse(msg tea.MouseMsg) {
	s := b.player.Surface()
	p := controls.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionMotion:
		b.mount.hub.Move(p)
		b.hover(b.layout.inFrame(msg.X, msg.Y))

	case tea.MouseActionRelease:
		b.mount.hub.Up(p)

	case tea.MouseActionPress:
		region := b.layout.hit(msg.X, msg.Y)
		if region == regionOutside {
			return
		}
		b.hover(true)

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.Key("up")
			return
		case tea.MouseButtonWheelDown:
			s.Key("down")
			return
		case tea.MouseButtonLeft:
		default:
			return
		}

		switch region {
		case regionTimeline:
			s.TimelineDown(p, b.layout.timelineRect())
		case regionVolume:
			s.VolumeDown(p, b.layout.volumeRect())
		case regionMute:
			s.MuteButton()
		case regionFullscreen:
			s.FullscreenButton()
		default:
			s.Click()
		}
	}
}

// hover turns pointer presence into enter, move and leave notifications.
func (b *bubble) hover(inside bool) {
	s := b.player.Surface()
	switch {
	case inside && !b.inside:
		s.PointerEnter()
	case inside:
		s.PointerMove()
	case b.inside:
		s.PointerLeave()
	}
	b.inside = inside
}
