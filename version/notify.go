package version

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/constant"
	"github.com/vhls-cli/vhls/icon"
	"github.com/vhls-cli/vhls/key"
	"github.com/vhls-cli/vhls/style"
	"github.com/vhls-cli/vhls/util"
)

// Newer returns the latest release when it is ahead of the running build.
func Newer(ctx context.Context) (string, bool) {
	latest, err := Latest(ctx)
	if err != nil {
		return "", false
	}
	c, err := Compare(latest, constant.Version)
	return latest, err == nil && c > 0
}

// Notify prints an update notice when cli.version_check is on and a newer
// release exists. Lookup failures print nothing.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(icon.Get(icon.Progress) + " Checking for a newer version...")
	latest, ok := Newer(ctx)
	erase()
	if !ok {
		return
	}

	fmt.Printf("\n%s %s %s is available %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		constant.App,
		style.Bold(latest),
		style.Faint("(running "+constant.Version+")"),
		style.Faint("https://github.com/vhls-cli/vhls/releases/tag/v"+latest),
	)
}
