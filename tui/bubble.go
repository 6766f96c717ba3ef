package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/internal/ui"
	"github.com/vhls-cli/vhls/player"
	"github.com/vhls-cli/vhls/util"
)

// bubble is the bubbletea model hosting one player.
type bubble struct {
	mount  *mount
	player *player.Player
	input  string
	keymap *keymap
	layout layout

	width, height int
	focused       bool
	// inside tracks whether the pointer was last seen over the frame.
	inside bool

	progressC progress.Model
	spinnerC  spinner.Model
	helpC     help.Model
	notifier  ui.Model
}

func newBubble(m *mount, p *player.Player, input string) *bubble {
	b := &bubble{
		mount:   m,
		player:  p,
		input:   input,
		keymap:  newKeymap(),
		focused: true,
	}

	b.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Purple)
	b.helpC = help.New()

	width, height, err := util.TerminalSize()
	if err != nil {
		width, height = 80, 24
	}
	b.resize(width, height)
	return b
}

func (b *bubble) resize(width, height int) {
	b.width, b.height = width, height
	b.layout = newLayout(width)
	b.progressC.Width = b.layout.barWidth
	b.helpC.Width = width
	b.reportVisibility()
}

// reportVisibility feeds the observer: nothing is visible while the
// terminal is unfocused, otherwise the share of the frame that fits.
func (b *bubble) reportVisibility() {
	ratio := 0.0
	if b.focused {
		ratio = visibleRatio(b.height)
	}
	b.mount.feed.Report(ratio)
}
