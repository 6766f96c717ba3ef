// Package cmd implements the command-line interface for vhls.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/auth"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/constant"
	"github.com/vhls-cli/vhls/icon"
	"github.com/vhls-cli/vhls/key"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/player"
	"github.com/vhls-cli/vhls/recent"
	"github.com/vhls-cli/vhls/style"
	"github.com/vhls-cli/vhls/tui"
	"github.com/vhls-cli/vhls/version"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("credential", "c", "", "Access token for the authenticated tier. Defaults to the stored token")

	rootCmd.Flags().StringP("poster", "p", "", "Poster URL that overrides every resolved poster")

	rootCmd.Flags().BoolP("autoplay", "a", false, "Start playing as soon as the stream is loaded")
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, rootCmd.Flags().Lookup("autoplay")))

	rootCmd.Flags().BoolP("muted", "m", false, "Start with audio muted")
	lo.Must0(viper.BindPFlag(key.PlayerMuted, rootCmd.Flags().Lookup("muted")))

	rootCmd.Flags().Bool("controls", true, "Render the control surface")
	lo.Must0(viper.BindPFlag(key.PlayerShowControls, rootCmd.Flags().Lookup("controls")))

	rootCmd.Flags().String("aspect-ratio", "16:9", "Aspect ratio as W:H")
	lo.Must0(viper.BindPFlag(key.PlayerAspectRatio, rootCmd.Flags().Lookup("aspect-ratio")))

	rootCmd.Flags().Bool("pause-out-of-view", true, "Pause when the player loses focus or does not fit the terminal")
	lo.Must0(viper.BindPFlag(key.PlayerPauseWhenOutOfView, rootCmd.Flags().Lookup("pause-out-of-view")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd plays a stream.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [url or video id]",
	Short: "Play HLS streams and vimeo videos in the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play HLS streams and vimeo videos with an interactive control surface"),
	Example: "  vhls https://example.com/live/master.m3u8\n  vhls https://vimeo.com/76979871 --autoplay",
	Args:    cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return recent.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		CheckDependencies()

		opts := player.OptionsFromConfig()
		opts.StreamInput = args[0]
		opts.Poster = lo.Must(cmd.Flags().GetString("poster"))
		opts.Credential = credential(cmd)

		if err := recent.Remember(opts.StreamInput, 1); err != nil {
			log.Warnf("remember input: %v", err)
		}

		handleErr(tui.Run(&tui.Options{Player: opts}))
	},
}

// credential returns the --credential flag or the stored token.
func credential(cmd *cobra.Command) string {
	if c := lo.Must(cmd.Flags().GetString("credential")); c != "" {
		return c
	}
	return auth.Token().OrEmpty()
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
