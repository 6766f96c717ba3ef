// Package config registers every setting with viper and loads the user's
// vhls.toml on top of the defaults.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/constant"
	"github.com/vhls-cli/vhls/filesystem"
	"github.com/vhls-cli/vhls/where"
)

// EnvKeyReplacer maps "player.autoplay" to "PLAYER_AUTOPLAY".
var EnvKeyReplacer = strings.NewReplacer(".", "_")

const fileType = "toml"

// File is the path of the configuration file, whether or not it exists.
func File() string {
	return filepath.Join(where.Config(), constant.App+"."+fileType)
}

// Setup applies defaults, binds VHLS_* variables and reads the config file
// if there is one.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType(fileType)
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}
