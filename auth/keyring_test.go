package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestToken(t *testing.T) {
	keyring.MockInit()

	Convey("Given a mocked keyring", t, func() {
		So(DeleteToken(), ShouldBeNil)

		Convey("No token is found at first", func() {
			So(Token().IsAbsent(), ShouldBeTrue)
		})

		Convey("A stored token is returned", func() {
			So(SetToken(" abc "), ShouldBeNil)
			So(Token().MustGet(), ShouldEqual, "abc")
		})

		Convey("Empty tokens are rejected", func() {
			So(SetToken("  "), ShouldNotBeNil)
		})

		Convey("The environment wins over the keyring", func() {
			So(SetToken("stored"), ShouldBeNil)
			t.Setenv(EnvToken, "from-env")
			So(Token().MustGet(), ShouldEqual, "from-env")
		})

		Convey("Deleting twice is fine", func() {
			So(SetToken("abc"), ShouldBeNil)
			So(DeleteToken(), ShouldBeNil)
			So(DeleteToken(), ShouldBeNil)
			So(Token().IsAbsent(), ShouldBeTrue)
		})
	})
}
