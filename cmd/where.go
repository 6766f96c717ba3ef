package cmd

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/config"
	"github.com/vhls-cli/vhls/style"
	"github.com/vhls-cli/vhls/where"
)

type location struct {
	Name  string
	Flag  string
	Short string
	Path  func() string
	// Internal locations are only printed when asked for by flag.
	Internal bool
}

var locations = []location{
	{Name: "config", Flag: "config", Short: "c", Path: where.Config},
	{Name: "config file", Flag: "config-file", Path: config.File},
	{Name: "logs", Flag: "logs", Short: "l", Path: where.Logs},
	{Name: "cache", Flag: "cache", Short: "C", Path: where.Cache},
	{Name: "engine sockets", Flag: "temp", Path: where.Temp, Internal: true},
	{Name: "poster cache", Flag: "posters", Path: where.Posters, Internal: true},
	{Name: "recent inputs", Flag: "recent", Path: where.Recent, Internal: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.Flag, l.Short, false, "print the "+l.Name+" path only")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.Flag })...)
	whereCmd.Flags().BoolP("json", "j", false, "print every location as JSON")
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where vhls keeps its files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.Flag)) {
				cmd.Println(l.Path())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(locations, func(l location) (string, string) { return l.Flag, l.Path() })
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(locations, func(l location, _ int) bool { return l.Internal })
		for i, l := range visible {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(l.Name), style.Fg(color.Yellow)("--"+l.Flag))
			cmd.Println(l.Path())
		}
	},
}
