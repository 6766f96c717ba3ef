package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/filesystem"
	"github.com/vhls-cli/vhls/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.ControlsAutoHideMs), ShouldEqual, 3000)
			So(viper.GetInt(key.ControlsHoverDebounceMs), ShouldEqual, 100)
			So(viper.GetFloat64(key.VisibilityThreshold), ShouldEqual, 0.5)
			So(viper.GetString(key.PlayerAspectRatio), ShouldEqual, "16:9")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("controls.auto_hide_ms")
			So(result, ShouldEqual, "controls_auto_hide_ms")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.VisibilityThreshold]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "VHLS_VISIBILITY_THRESHOLD")
		})

		Convey("Type should report float values", func() {
			So(field.Type(), ShouldEqual, "float64")
		})

		Convey("MarshalJSON should include the default", func() {
			b, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"default":0.5`)
		})
	})
}
