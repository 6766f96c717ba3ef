package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/icon"
	"github.com/vhls-cli/vhls/playback"
	"github.com/vhls-cli/vhls/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(padY, padX)

var statusColors = map[playback.Status]lipgloss.Color{
	playback.StatusIdle:    color.Gray,
	playback.StatusLoading: color.Yellow,
	playback.StatusReady:   color.Blue,
	playback.StatusPlaying: color.Green,
	playback.StatusPaused:  color.Purple,
	playback.StatusError:   color.Red,
}

func (b *bubble) View() string {
	f := b.mount.snapshot()
	ui := f.ui
	visible := ui.ControlsVisible()

	lines := make([]string, frameRows)
	lines[rowHeader] = b.viewHeader(ui)
	lines[rowPoster] = b.viewPoster(f.poster)
	if visible {
		lines[rowTimeline] = b.progressC.ViewAs(ui.Progress)
		lines[rowButtons] = viewButtons(ui)

		column := volumeColumn(ui)
		for i := 0; i < volumeRows; i++ {
			lines[i] = fit(lines[i], b.layout.barWidth+2) + column[i]
		}
	}
	lines[rowHelp] = b.helpC.View(b.keymap)

	out := strings.Join(lines, "\n")
	if f.errTitle != "" {
		out += "\n\n" + style.ErrorTitle(f.errTitle) + "\n" +
			icon.Get(icon.Fail) + " " + wrap.String(f.errMessage, b.layout.frameWidth())
	}

	return b.notifier.View(paddingStyle.Render(out))
}

func (b *bubble) viewHeader(ui controls.UIState) string {
	attrs := ui.Attributes()

	status := attrs[controls.AttrStatus]
	tag := style.Tag(color.Cream, statusColors[ui.Status])(status)
	if ui.Status == playback.StatusEnded {
		tag = style.Tag(color.Cream, statusColors[playback.StatusPaused])(status)
	}

	var indicator string
	switch ui.Status {
	case playback.StatusLoading:
		indicator = b.spinnerC.View()
	case playback.StatusPlaying:
		indicator = icon.Get(icon.Play)
	case playback.StatusPaused, playback.StatusEnded:
		indicator = icon.Get(icon.Pause)
	}

	header := style.Title("vhls") + " " + tag
	if indicator != "" {
		header += " " + indicator
	}
	if ui.Dragging {
		header += " " + style.Faint("scrubbing")
	}
	return header + " " + style.Faint(truncate.StringWithTail(b.input, uint(b.layout.barWidth/2), "…"))
}

func (b *bubble) viewPoster(poster string) string {
	if poster == "" {
		return style.Faint("no poster")
	}
	return icon.Get(icon.Link) + " " + style.Faint(truncate.StringWithTail(poster, uint(b.layout.barWidth-2), "…"))
}

func viewButtons(ui controls.UIState) string {
	play := "[play]"
	if ui.Status == playback.StatusPlaying {
		play = "[pause]"
	}
	mute := "[mute]"
	if ui.Muted {
		mute = "[unmute]"
	}
	full := "[full]"
	if ui.Fullscreen {
		full = "[exit]"
	}

	buttons := fit(play, playWidth) + " " + fit(mute, muteWidth) + " " + fit(full, fullWidth)
	times := style.Fg(color.Purple)(fmt.Sprintf("%s / %s", ui.CurrentTime, ui.Duration))
	buffered := style.Faint(fmt.Sprintf("%.0f%% buffered", ui.Buffered*100))
	return buttons + "  " + times + "  " + buffered
}

// volumeColumn renders the vertical slider top to bottom.
func volumeColumn(ui controls.UIState) []string {
	column := make([]string, volumeRows)
	for i := range column {
		level := 1 - float64(i)/float64(volumeRows-1)
		if ui.VolumeFill > 0 && ui.VolumeFill+1e-9 >= level {
			column[i] = style.Fg(color.Purple)("█")
		} else {
			column[i] = style.Faint("│")
		}
	}
	if ui.Muted {
		column[volumeRows-1] = style.Fg(color.Red)("x")
	}
	return column
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	s = truncate.String(s, uint(width))
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
