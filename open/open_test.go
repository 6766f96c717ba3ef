package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Only web URLs are handed to the system", t, func() {
		for _, target := range []string{"", "/etc/passwd", "file:///etc/passwd", "--help", "javascript:alert(1)"} {
			_, err := command(target)
			So(err, ShouldNotBeNil)
		}
	})
}
