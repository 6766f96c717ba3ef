// Package style holds the lipgloss renderers shared by the CLI and the
// player UI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vhls-cli/vhls/color"
)

// Colors of boxed messages such as the missing engine notice.
var (
	Text   = lipgloss.Color("#cdd6f4")
	Accent = lipgloss.Color("#cba6f7")
	Danger = lipgloss.Color("#f38ba8")
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer painting text in c.
func Fg(c lipgloss.Color) func(string) string {
	st := New().Foreground(c)
	return func(s string) string { return st.Render(s) }
}

// Tag returns a renderer for a padded label with fg on bg.
func Tag(fg, bg lipgloss.Color) func(string) string {
	st := New().Foreground(fg).Background(bg).Padding(0, 1)
	return func(s string) string { return st.Render(s) }
}

func Faint(s string) string { return New().Faint(true).Render(s) }

func Bold(s string) string { return New().Bold(true).Render(s) }

var (
	Title      = Tag(color.Cream, color.Indigo)
	ErrorTitle = Tag(color.Cream, color.Red)
)
