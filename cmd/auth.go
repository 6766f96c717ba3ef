package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/vhls-cli/vhls/auth"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/icon"
	"github.com/vhls-cli/vhls/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd, authDeleteCmd, authStatusCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the access token used for private and embed-restricted videos",
}

var authSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store an access token in the system keyring",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			prompt := &survey.Password{
				Message: "Access token:",
				Help:    "A personal access token with the video_files scope",
			}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s token saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove", "logout"},
	Short:   "Remove the stored access token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s token removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an access token is available",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := auth.Token().Get()
		if !ok {
			handleErr(errors.New("no access token stored"))
		}
		fmt.Printf("%s token available %s\n", style.Fg(color.Green)(icon.Get(icon.Key)), style.Faint(mask(token)))
	},
}

// mask hides all but the last four characters of a token.
func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
