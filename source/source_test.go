package source

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("A direct manifest URL becomes Direct", func() {
			src, err := Parse("https://x/a.m3u8", "")
			So(err, ShouldBeNil)
			So(src, ShouldResemble, Direct{URL: "https://x/a.m3u8"})
		})

		Convey("A bare numeric id becomes an Identifier without credential", func() {
			src, err := Parse(" 123 ", "")
			So(err, ShouldBeNil)
			ident, ok := src.(Identifier)
			So(ok, ShouldBeTrue)
			So(ident.ID, ShouldEqual, "123")
			So(ident.HasCredential(), ShouldBeFalse)
		})

		Convey("A hosting-service URL carries the credential", func() {
			src, err := Parse("https://vimeo.com/76979871", "tok")
			So(err, ShouldBeNil)
			ident := src.(Identifier)
			So(ident.ID, ShouldEqual, "76979871")
			So(ident.HasCredential(), ShouldBeTrue)
			So(ident.Credential.MustGet(), ShouldEqual, "tok")
			So(ident.String(), ShouldEqual, "vimeo:76979871")
		})

		Convey("Empty and unsupported inputs are rejected", func() {
			_, err := Parse("   ", "")
			So(err, ShouldNotBeNil)

			_, err = Parse("ftp://host/a.m3u8", "")
			So(err, ShouldNotBeNil)

			_, err = Parse("not a url", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestResolvedMedia(t *testing.T) {
	Convey("ResolvedMedia", t, func() {
		m := ResolvedMedia{StreamURL: "https://x/a.m3u8"}
		So(m.Poster(), ShouldEqual, "")

		Convey("WithPoster returns a copy", func() {
			withPoster := m.WithPoster("https://i/p.jpg")
			So(withPoster.Poster(), ShouldEqual, "https://i/p.jpg")
			So(m.Poster(), ShouldEqual, "")
		})

		Convey("WithPoster ignores empty posters", func() {
			So(m.WithPoster("").PosterURL.IsPresent(), ShouldBeFalse)
		})
	})
}

func TestResolutionError(t *testing.T) {
	Convey("ResolutionError", t, func() {
		cause := errors.New("status 403")
		err := fmt.Errorf("load: %w", NewResolutionError(MissingCredential, "123", cause))

		Convey("matches its kind sentinel through wrapping", func() {
			So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
			So(errors.Is(err, ErrNotFound), ShouldBeFalse)
		})

		Convey("unwraps to its cause", func() {
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("exposes kind and id through errors.As", func() {
			var re *ResolutionError
			So(errors.As(err, &re), ShouldBeTrue)
			So(re.Kind, ShouldEqual, MissingCredential)
			So(re.ID, ShouldEqual, "123")
			So(re.Error(), ShouldContainSubstring, "access token")
		})
	})
}
