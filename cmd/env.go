package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vhls-cli/vhls/auth"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/config"
	"github.com/vhls-cli/vhls/style"
	"github.com/vhls-cli/vhls/where"
	"golang.org/x/exp/slices"
)

// envNames lists every variable vhls reads, sorted.
func envNames() []string {
	names := lo.Map(config.EnvExposed, func(k string, _ int) string {
		field := config.Default[k]
		return field.Env()
	})
	names = append(names, where.EnvConfigPath, auth.EnvToken)
	slices.Sort(names)
	return names
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "only variables that are not set")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables vhls reads",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))
		name := style.New().Bold(true).Foreground(color.Purple).Render

		for _, env := range envNames() {
			value, set := os.LookupEnv(env)
			if (setOnly && !set) || (unsetOnly && set) {
				continue
			}

			switch {
			case !set:
				cmd.Println(name(env) + "=" + style.Fg(color.Red)("unset"))
			case env == auth.EnvToken:
				cmd.Println(name(env) + "=" + style.Fg(color.Green)(mask(value)))
			default:
				cmd.Println(name(env) + "=" + style.Fg(color.Green)(value))
			}
		}
	},
}
