// Package color names the terminal colors vhls renders with.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the terminal theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Fixed colors for tags and accents.
var (
	Cream  = New("230")
	Indigo = New("62")
	Orange = New("#ffb703")
	Gray   = New("#808080")
)
