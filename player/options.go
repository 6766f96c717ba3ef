package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/key"
)

// Options are the construction options of a Player.
type Options struct {
	// StreamInput is a direct stream URL, a vimeo URL or a bare video id.
	StreamInput string
	// Credential enables the authenticated resolution tier.
	Credential string
	Autoplay   bool
	Muted      bool
	// ShowControls lets the renderer draw the control bar.
	ShowControls bool
	// AspectRatio is "W:H" and reserves layout space.
	AspectRatio string
	// Poster overrides every resolved poster.
	Poster             string
	PauseWhenOutOfView bool
	// VisibilityThreshold is the visible ratio below which the gate pauses.
	VisibilityThreshold float64
}

// OptionsFromConfig returns Options seeded from the player.* and
// visibility.* settings. StreamInput, Credential and Poster are left empty.
func OptionsFromConfig() Options {
	return Options{
		Autoplay:            viper.GetBool(key.PlayerAutoplay),
		Muted:               viper.GetBool(key.PlayerMuted),
		ShowControls:        viper.GetBool(key.PlayerShowControls),
		AspectRatio:         viper.GetString(key.PlayerAspectRatio),
		PauseWhenOutOfView:  viper.GetBool(key.PlayerPauseWhenOutOfView),
		VisibilityThreshold: viper.GetFloat64(key.VisibilityThreshold),
	}
}

// Layout is the space a renderer should reserve for the video.
type Layout struct {
	Width, Height float64
	// PaddingTop is Height/Width as a percentage of the container width.
	PaddingTop float64
}

// Rows returns how many terminal rows a video cols wide should take, given
// cells about twice as tall as they are wide.
func (l Layout) Rows(cols int) int {
	if l.Width <= 0 || cols <= 0 {
		return 0
	}
	return int(float64(cols) * l.Height / l.Width / 2)
}

// ParseAspectRatio parses "W:H". An empty string yields the zero Layout.
func ParseAspectRatio(ratio string) (Layout, error) {
	ratio = strings.TrimSpace(ratio)
	if ratio == "" {
		return Layout{}, nil
	}

	w, h, ok := strings.Cut(ratio, ":")
	if !ok {
		return Layout{}, fmt.Errorf("aspect ratio %q is not W:H", ratio)
	}

	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return Layout{}, fmt.Errorf("aspect ratio %q: %w", ratio, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return Layout{}, fmt.Errorf("aspect ratio %q: %w", ratio, err)
	}
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("aspect ratio %q must be positive", ratio)
	}

	return Layout{Width: width, Height: height, PaddingTop: height / width * 100}, nil
}
