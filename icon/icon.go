// Package icon renders status symbols in the variant selected by the
// icons.variant setting.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/key"
	"golang.org/x/exp/slices"
)

var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return slices.Clone(variants)
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(variant string) string {
	switch variant {
	case "emoji":
		return d.emoji
	case "nerd":
		return d.nerd
	case "plain":
		return d.plain
	case "kaomoji":
		return d.kaomoji
	case "squares":
		return d.squares
	}
	return ""
}

// Get renders i, or returns "" when icons are disabled or i is unknown.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.in(viper.GetString(key.IconsVariant))
}
