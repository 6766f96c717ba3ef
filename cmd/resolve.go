package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/icon"
	"github.com/vhls-cli/vhls/open"
	"github.com/vhls-cli/vhls/recent"
	"github.com/vhls-cli/vhls/resolver"
	"github.com/vhls-cli/vhls/source"
	"github.com/vhls-cli/vhls/style"
)

// resolveOutput is printed by the resolve command.
type resolveOutput struct {
	Input     string `json:"input" jsonschema:"description=Input as given on the command line."`
	Kind      string `json:"kind" jsonschema:"enum=direct,enum=identifier,description=Whether the input was a stream URL or a video identifier."`
	ID        string `json:"id,omitempty" jsonschema:"description=Video identifier on the hosting service. Empty for direct streams."`
	StreamURL string `json:"stream_url" jsonschema:"description=HLS manifest URL to hand to a media engine."`
	PosterURL string `json:"poster_url,omitempty" jsonschema:"description=Poster image URL, if one was found or given."`
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	resolveCmd.Flags().Bool("schema", false, "Print the JSON schema of the output and exit")
	resolveCmd.Flags().BoolP("open", "o", false, "Open the poster with the system handler")
	resolveCmd.Flags().StringP("poster", "p", "", "Poster URL that overrides every resolved poster")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [url or video id]",
	Short: "Resolve an input to its stream and poster URLs without playing it",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return recent.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(&resolveOutput{})))
			return
		}

		if len(args) == 0 {
			handleErr(errors.New("an input is required"))
		}

		src, err := source.Parse(args[0], credential(cmd))
		handleErr(err)

		var opts []resolver.ResolveOption
		if poster := lo.Must(cmd.Flags().GetString("poster")); poster != "" {
			opts = append(opts, resolver.WithPoster(poster))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		media, err := resolver.NewFromConfig().Resolve(ctx, src, opts...)
		handleErr(err)

		out := newResolveOutput(args[0], src, media)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(out))
		} else {
			printResolveOutput(cmd, out)
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			if out.PosterURL == "" {
				handleErr(errors.New("no poster to open"))
			}
			handleErr(open.Start(out.PosterURL))
		}
	},
}

func newResolveOutput(input string, src source.StreamSource, media source.ResolvedMedia) resolveOutput {
	out := resolveOutput{
		Input:     input,
		Kind:      "direct",
		StreamURL: media.StreamURL,
		PosterURL: media.Poster(),
	}
	if ident, ok := src.(source.Identifier); ok {
		out.Kind = "identifier"
		out.ID = ident.ID
	}
	return out
}

func printResolveOutput(cmd *cobra.Command, out resolveOutput) {
	label := style.New().Bold(true).Foreground(color.Purple).Render

	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Faint(out.Kind))
	if out.ID != "" {
		cmd.Printf("%s %s\n", label("id:    "), out.ID)
	}
	cmd.Printf("%s %s\n", label("stream:"), out.StreamURL)

	poster := style.Faint("none")
	if out.PosterURL != "" {
		poster = out.PosterURL
	}
	cmd.Println(fmt.Sprintf("%s %s", label("poster:"), poster))
}
