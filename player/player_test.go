package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/engine/enginetest"
	"github.com/vhls-cli/vhls/playback"
	"github.com/vhls-cli/vhls/resolver"
	"github.com/vhls-cli/vhls/source"
	"github.com/vhls-cli/vhls/visibility"
	"go.uber.org/goleak"
)

type fakeMount struct {
	mu      sync.Mutex
	renders []controls.UIState
	poster  string
	errors  []string
	hub     *controls.InputHub
	feed    *visibility.Feed
}

func newFakeMount() *fakeMount {
	return &fakeMount{hub: controls.NewInputHub(), feed: visibility.NewFeed()}
}

func (m *fakeMount) Render(ui controls.UIState) {
	m.mu.Lock()
	m.renders = append(m.renders, ui)
	m.mu.Unlock()
}

func (m *fakeMount) SetPoster(url string) {
	m.mu.Lock()
	m.poster = url
	m.mu.Unlock()
}

func (m *fakeMount) ShowError(title, message string) {
	m.mu.Lock()
	m.errors = append(m.errors, title+": "+message)
	m.mu.Unlock()
}

func (m *fakeMount) Input() controls.GlobalInput     { return m.hub }
func (m *fakeMount) Observer() visibility.Observer { return m.feed }

func (m *fakeMount) renderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.renders)
}

func (m *fakeMount) shown() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

func (m *fakeMount) posterURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.poster
}

type resolverFunc func(ctx context.Context, src source.StreamSource, opts ...resolver.ResolveOption) (source.ResolvedMedia, error)

func (f resolverFunc) Resolve(ctx context.Context, src source.StreamSource, opts ...resolver.ResolveOption) (source.ResolvedMedia, error) {
	return f(ctx, src, opts...)
}

// staticResolver resolves identifiers to a fixed stream and poster.
func staticResolver(stream, poster string) Resolver {
	return resolverFunc(func(ctx context.Context, src source.StreamSource, opts ...resolver.ResolveOption) (source.ResolvedMedia, error) {
		if d, ok := src.(source.Direct); ok {
			return source.ResolvedMedia{StreamURL: d.URL}, nil
		}
		return source.ResolvedMedia{StreamURL: stream}.WithPoster(poster), nil
	})
}

func newTestFactory(fake *enginetest.Fake, r Resolver) *Factory {
	return NewFactory(
		WithEngine(func(Options) engine.Engine { return fake }),
		WithResolver(r),
		WithClock(clock.NewMock()),
	)
}

func TestConstruction(t *testing.T) {
	Convey("Given a factory", t, func() {
		f := newTestFactory(enginetest.New(), staticResolver("", ""))

		Convey("A missing mount is a construction error", func() {
			_, err := f.New(nil, Options{})
			So(IsConstructionError(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "missing mount target")
		})

		Convey("A malformed aspect ratio is a construction error", func() {
			for _, ratio := range []string{"wide", "16:", "0:9", "16:-9"} {
				_, err := f.New(newFakeMount(), Options{AspectRatio: ratio})
				So(IsConstructionError(err), ShouldBeTrue)
			}
		})

		Convey("The aspect ratio reserves layout space", func() {
			p, err := f.New(newFakeMount(), Options{AspectRatio: "16:9"})
			So(err, ShouldBeNil)
			defer p.Destroy()
			So(p.Layout().PaddingTop, ShouldEqual, 56.25)
			So(p.Layout().Rows(160), ShouldEqual, 45)
			So(p.ID(), ShouldNotBeEmpty)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a player over a fake engine", t, func() {
		fake := enginetest.New()
		mount := newFakeMount()

		Convey("A direct stream is loaded, muted and autoplayed", func() {
			p, err := newTestFactory(fake, staticResolver("", "")).New(mount, Options{
				StreamInput: "https://x/a.m3u8",
				Autoplay:    true,
				Muted:       true,
			})
			So(err, ShouldBeNil)
			defer p.Destroy()
			p.WaitLoad()

			So(fake.Loaded(), ShouldEqual, "https://x/a.m3u8")
			So(fake.Calls(), ShouldContain, "play")
			So(p.State().Muted, ShouldBeTrue)
			So(p.State().Status, ShouldEqual, playback.StatusLoading)
			So(p.Media().StreamURL, ShouldEqual, "https://x/a.m3u8")
		})

		Convey("An identifier shows the resolved poster", func() {
			p, err := newTestFactory(fake, staticResolver("https://cdn/m.m3u8", "https://p/1.jpg")).New(mount, Options{
				StreamInput: "https://vimeo.com/123",
			})
			So(err, ShouldBeNil)
			defer p.Destroy()
			p.WaitLoad()

			So(fake.Loaded(), ShouldEqual, "https://cdn/m.m3u8")
			So(mount.posterURL(), ShouldEqual, "https://p/1.jpg")
			So(fake.Calls(), ShouldNotContain, "play")
		})

		Convey("A caller poster is passed to the resolver and kept", func() {
			var gotPoster bool
			r := resolverFunc(func(ctx context.Context, src source.StreamSource, opts ...resolver.ResolveOption) (source.ResolvedMedia, error) {
				gotPoster = len(opts) == 1
				return source.ResolvedMedia{StreamURL: "https://cdn/m.m3u8"}.WithPoster("https://mine"), nil
			})
			p, err := newTestFactory(fake, r).New(mount, Options{StreamInput: "123", Poster: "https://mine"})
			So(err, ShouldBeNil)
			defer p.Destroy()
			p.WaitLoad()

			So(gotPoster, ShouldBeTrue)
			So(mount.posterURL(), ShouldEqual, "https://mine")
		})

		Convey("A resolution failure surfaces as error event and notice", func() {
			r := resolverFunc(func(context.Context, source.StreamSource, ...resolver.ResolveOption) (source.ResolvedMedia, error) {
				return source.ResolvedMedia{}, source.NewResolutionError(source.MissingCredential, "123", nil)
			})
			p, err := newTestFactory(fake, r).New(mount, Options{})
			So(err, ShouldBeNil)
			defer p.Destroy()

			var got *playback.PlaybackError
			p.On(playback.EventError, func(ev playback.Event) { got = ev.Err })
			p.Load("123")
			p.WaitLoad()

			So(p.State().Status, ShouldEqual, playback.StatusError)
			So(got, ShouldNotBeNil)
			So(errors.Is(got, source.ErrMissingCredential), ShouldBeTrue)
			So(mount.shown(), ShouldHaveLength, 1)
			So(mount.shown()[0], ShouldStartWith, "Failed to load Vimeo video: ")
			So(p.Surface().State().Notice, ShouldEqual, got.Message)
			So(fake.Loaded(), ShouldBeEmpty)
		})

		Convey("Unparseable input fails without touching the engine", func() {
			p, err := newTestFactory(fake, staticResolver("", "")).New(mount, Options{StreamInput: "ftp://nope"})
			So(err, ShouldBeNil)
			defer p.Destroy()
			p.WaitLoad()

			So(p.State().Status, ShouldEqual, playback.StatusError)
			So(fake.Calls(), ShouldBeEmpty)
		})

		Convey("Engine errors are shown with the generic title", func() {
			p, err := newTestFactory(fake, staticResolver("", "")).New(mount, Options{StreamInput: "https://x/a.m3u8"})
			So(err, ShouldBeNil)
			defer p.Destroy()
			p.WaitLoad()

			fake.Emit(engine.Event{Kind: engine.EventError, Err: errors.New("403 from cdn")})
			So(mount.shown(), ShouldResemble, []string{"Failed to load video: 403 from cdn"})
		})
	})
}

func TestPublicOperations(t *testing.T) {
	Convey("Given a playing player", t, func() {
		fake := enginetest.New()
		mount := newFakeMount()
		p, err := newTestFactory(fake, staticResolver("", "")).New(mount, Options{
			StreamInput:        "https://x/a.m3u8",
			PauseWhenOutOfView: true,
		})
		So(err, ShouldBeNil)
		defer p.Destroy()
		p.WaitLoad()
		fake.Emit(engine.Event{Kind: engine.EventDuration, Value: 60})
		fake.Emit(engine.Event{Kind: engine.EventLoadedMetadata})
		fake.Emit(engine.Event{Kind: engine.EventPlay})

		Convey("Transport operations reach the engine", func() {
			So(p.Seek(90), ShouldBeNil)
			So(p.CurrentTime(), ShouldEqual, 60)
			So(p.Duration(), ShouldEqual, 60)
			So(p.SetVolume(2), ShouldBeNil)
			So(p.Volume(), ShouldEqual, 1)
			So(p.ToggleMute(), ShouldBeNil)
			So(fake.Muted(), ShouldBeTrue)
			So(p.TogglePlay(), ShouldBeNil)
			So(fake.Count("pause"), ShouldEqual, 1)
		})

		Convey("On and Off manage handlers", func() {
			n := 0
			id := p.On(playback.EventPause, func(playback.Event) { n++ })
			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			p.Off(playback.EventPause, id)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			So(n, ShouldEqual, 1)
		})

		Convey("Leaving the viewport pauses once and never resumes", func() {
			mount.feed.Report(0.2)
			mount.feed.Report(1)
			So(fake.Count("pause"), ShouldEqual, 1)
			So(fake.Count("play"), ShouldEqual, 0)
		})

		Convey("Destroy releases everything", func() {
			p.Surface().TimelineDown(controls.Point{X: 5}, controls.Rect{Width: 10})
			So(mount.hub.Listeners(), ShouldEqual, 2)

			So(p.Destroy(), ShouldBeNil)
			renders := mount.renderCount()

			So(fake.Closed(), ShouldBeTrue)
			So(mount.hub.Listeners(), ShouldEqual, 0)
			So(mount.feed.Observers(), ShouldEqual, 0)

			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			mount.hub.Move(controls.Point{X: 9})
			p.Surface().PointerEnter()
			So(mount.renderCount(), ShouldEqual, renders)
			So(p.Destroy(), ShouldBeNil)
		})
	})
}

func TestDestroyLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	started := make(chan struct{})
	blocking := resolverFunc(func(ctx context.Context, _ source.StreamSource, _ ...resolver.ResolveOption) (source.ResolvedMedia, error) {
		close(started)
		<-ctx.Done()
		return source.ResolvedMedia{}, ctx.Err()
	})

	fake := enginetest.New()
	mount := newFakeMount()
	p, err := newTestFactory(fake, blocking).New(mount, Options{
		StreamInput:        "https://vimeo.com/1",
		PauseWhenOutOfView: true,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("resolver was never called")
	}

	p.Surface().PointerEnter()
	p.Surface().PointerLeave()

	if err := p.Destroy(); err != nil {
		t.Errorf("Destroy() error: %v", err)
	}
	if got := mount.shown(); len(got) != 0 {
		t.Errorf("canceled load showed a notice: %v", got)
	}
}
