package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/color"
	"github.com/vhls-cli/vhls/constant"
	"github.com/vhls-cli/vhls/style"
)

// Field is one registered setting. Value is the default and fixes the type
// accepted by `vhls config set`.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the variable overriding the field, e.g. VHLS_PLAYER_AUTOPLAY.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type is the Go type of the default, e.g. "float64".
func (f *Field) Type() string {
	return fmt.Sprintf("%T", f.Value)
}

// Pretty renders the field for `vhls config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Type:        f.Type(),
		Description: f.Description,
	})
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return style.Fg(lo.Ternary(value, color.Green, color.Red))(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return style.Fg(color.Cyan)(fmt.Sprint(value))
	}
}

var prettyTemplate = template.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"blue":    style.Fg(color.Blue),
	"purple":  style.Fg(color.Purple),
	"current": viper.Get,
	"hl":      highlight,
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (current .Key) }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ .Type }}`))
