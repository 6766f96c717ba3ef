package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vhls-cli/vhls/icon"
	"github.com/vhls-cli/vhls/recent"
	"github.com/vhls-cli/vhls/util"
	"github.com/vhls-cli/vhls/where"
)

type clearable struct {
	name  string
	flag  string
	short string
	clear func() error
}

func removePath(path func() string) func() error {
	return func() error {
		err := util.Delete(path())
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
}

var clearables = []clearable{
	{"poster cache", "posters", "p", removePath(where.Posters)},
	{"recent inputs", "recent", "r", recent.Clear},
	{"engine sockets", "temp", "t", removePath(where.Temp)},
	{"cache directory", "cache", "c", removePath(where.Cache)},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	for _, c := range clearables {
		clearCmd.Flags().BoolP(c.flag, c.short, false, "clear the "+c.name)
	}
	clearCmd.Flags().BoolP("all", "a", false, "clear everything above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached posters, recent inputs and stale engine sockets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		selected := lo.Filter(clearables, func(c clearable, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(c.flag))
		})
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, c := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), c.name))
			err := c.clear()
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(c.name))
		}
	},
}
