package cmd

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/constant"
	"github.com/vhls-cli/vhls/style"
	"github.com/vhls-cli/vhls/version"
)

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"yellow":  style.Fg(color.Yellow),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}{{ if .Latest }} {{ yellow (print "(latest " .Latest ")") }}{{ end }}
  {{ faint "Revision" }}    {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }} by {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .Platform }}
  {{ faint "Engine" }}      {{ bold .Engine }}
`))

type versionInfo struct {
	App      string
	Version  string
	Latest   string
	Revision string
	BuiltAt  string
	BuiltBy  string
	Platform string
	Engine   string
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print the version number only")
	versionCmd.Flags().Bool("check", false, "look up the latest release now")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, build and engine information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := versionInfo{
			App:      constant.App,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
			Engine:   engineBinary() + " (not found)",
		}
		if path, err := exec.LookPath(engineBinary()); err == nil {
			info.Engine = path
		}

		if lo.Must(cmd.Flags().GetBool("check")) {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			latest, err := version.Latest(ctx)
			handleErr(err)
			info.Latest = latest
		} else {
			defer version.Notify()
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
