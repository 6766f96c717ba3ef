package playback

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/engine/enginetest"
)

type recorder struct {
	kinds []EventKind
}

func (r *recorder) watch(c *Controller, kinds ...EventKind) {
	for _, k := range kinds {
		c.On(k, func(ev Event) { r.kinds = append(r.kinds, ev.Kind) })
	}
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, k := range r.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func loaded(fake *enginetest.Fake, c *Controller) {
	So(c.Load(context.Background(), "https://x/a.m3u8"), ShouldBeNil)
	fake.Emit(engine.Event{Kind: engine.EventDuration, Value: 100})
	fake.Emit(engine.Event{Kind: engine.EventLoadedMetadata})
}

func TestControllerTransitions(t *testing.T) {
	Convey("Given a controller over a fake engine", t, func() {
		fake := enginetest.New()
		c := NewController(fake)
		rec := &recorder{}
		rec.watch(c, EventPlay, EventPause, EventEnded, EventError, EventLoadStart, EventLoadedMetadata, EventWaiting, EventCanPlay)

		So(c.State().Status, ShouldEqual, StatusIdle)

		Convey("Load enters loading and metadata makes it ready", func() {
			loaded(fake, c)
			So(fake.Loaded(), ShouldEqual, "https://x/a.m3u8")
			So(c.State().Status, ShouldEqual, StatusReady)
			So(rec.kinds[:2], ShouldResemble, []EventKind{EventLoadStart, EventLoadedMetadata})
		})

		Convey("play and pause alternate and activate the instance", func() {
			loaded(fake, c)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			So(c.State().Status, ShouldEqual, StatusPlaying)
			So(c.State().Activated, ShouldBeTrue)

			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			So(c.State().Status, ShouldEqual, StatusPaused)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			So(c.State().Status, ShouldEqual, StatusPlaying)
		})

		Convey("duplicate play and pause events are not re-emitted", func() {
			loaded(fake, c)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			So(rec.count(EventPlay), ShouldEqual, 1)
			So(rec.count(EventPause), ShouldEqual, 1)
		})

		Convey("a pause reported before anything played is dropped", func() {
			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			So(rec.count(EventPause), ShouldEqual, 0)
			So(c.State().Status, ShouldEqual, StatusIdle)
		})

		Convey("ended is reached from playing and replay restarts", func() {
			loaded(fake, c)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			fake.Emit(engine.Event{Kind: engine.EventEnded})
			So(c.State().Status, ShouldEqual, StatusEnded)

			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			So(c.State().Status, ShouldEqual, StatusEnded)

			So(c.Play(), ShouldBeNil)
			So(fake.Calls(), ShouldContain, "seek")
			So(fake.SeekedTo(), ShouldEqual, 0)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			So(c.State().Status, ShouldEqual, StatusPlaying)
		})

		Convey("waiting while playing goes back to loading until canplay", func() {
			loaded(fake, c)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			fake.Emit(engine.Event{Kind: engine.EventWaiting, Flag: true})
			So(c.State().Status, ShouldEqual, StatusLoading)
			fake.Emit(engine.Event{Kind: engine.EventCanPlay})
			So(c.State().Status, ShouldEqual, StatusPlaying)
		})

		Convey("autoplaying engines reach playing through canplay", func() {
			So(c.Load(context.Background(), "https://x/a.m3u8"), ShouldBeNil)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			So(c.State().Status, ShouldEqual, StatusLoading)
			fake.Emit(engine.Event{Kind: engine.EventLoadedMetadata})
			fake.Emit(engine.Event{Kind: engine.EventCanPlay})
			So(c.State().Status, ShouldEqual, StatusPlaying)
		})

		Convey("reloading while playing keeps the engine's pause flag", func() {
			loaded(fake, c)
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			loaded(fake, c)
			So(c.Paused(), ShouldBeFalse)
			fake.Emit(engine.Event{Kind: engine.EventCanPlay})
			So(c.State().Status, ShouldEqual, StatusPlaying)

			So(c.Toggle(), ShouldBeNil)
			So(fake.Count("pause"), ShouldEqual, 1)
		})

		Convey("engine errors become the error state and event", func() {
			var got *PlaybackError
			c.On(EventError, func(ev Event) { got = ev.Err })
			loaded(fake, c)
			fake.Emit(engine.Event{Kind: engine.EventError, Err: errors.New("decoder exploded")})
			So(c.State().Status, ShouldEqual, StatusError)
			So(got, ShouldNotBeNil)
			So(got.Message, ShouldEqual, "decoder exploded")

			Convey("and a new load resets the cycle", func() {
				loaded(fake, c)
				So(c.State().Status, ShouldEqual, StatusReady)
			})
		})

		Convey("a failing Load emits error without panicking", func() {
			fake.LoadErr = errors.New("no mpv")
			err := c.Load(context.Background(), "https://x/a.m3u8")
			So(err, ShouldNotBeNil)
			So(c.State().Status, ShouldEqual, StatusError)
			So(rec.count(EventError), ShouldEqual, 1)
		})

		Convey("Off removes a handler", func() {
			n := 0
			id := c.On(EventTimeUpdate, func(Event) { n++ })
			fake.Emit(engine.Event{Kind: engine.EventTimeUpdate, Value: 1})
			c.Off(EventTimeUpdate, id)
			fake.Emit(engine.Event{Kind: engine.EventTimeUpdate, Value: 2})
			So(n, ShouldEqual, 1)
		})

		Convey("Close ignores later engine events", func() {
			loaded(fake, c)
			c.Close()
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			So(c.State().Status, ShouldEqual, StatusReady)
		})
	})
}

func TestControllerCommands(t *testing.T) {
	Convey("Given a loaded controller", t, func() {
		fake := enginetest.New()
		c := NewController(fake)
		loaded(fake, c)

		Convey("volume is always clamped to [0,1]", func() {
			for _, v := range []float64{-3, -0.0001, 0, 0.25, 0.5, 1, 1.5, 42, math.Inf(1), math.Inf(-1)} {
				So(c.SetVolume(v), ShouldBeNil)
				want := math.Min(math.Max(v, 0), 1)
				So(c.Volume(), ShouldEqual, want)
				So(fake.Volume(), ShouldEqual, want)
			}
			So(c.SetVolume(math.NaN()), ShouldBeNil)
			So(c.Volume(), ShouldEqual, 0)
		})

		Convey("setting volume does not unmute", func() {
			So(c.SetMuted(true), ShouldBeNil)
			So(c.SetVolume(0.7), ShouldBeNil)
			So(c.Muted(), ShouldBeTrue)
			So(c.ToggleMute(), ShouldBeNil)
			So(c.Muted(), ShouldBeFalse)
			So(fake.Muted(), ShouldBeFalse)
		})

		Convey("seek is clamped to [0, duration]", func() {
			for _, in := range []float64{-10, 0, 12.5, 100, 1000, math.NaN()} {
				So(c.Seek(in), ShouldBeNil)
				got := c.CurrentTime()
				So(got, ShouldBeBetweenOrEqual, 0, c.Duration())
				So(fake.SeekedTo(), ShouldEqual, got)
			}
			So(c.Seek(12.5), ShouldBeNil)
			So(c.CurrentTime(), ShouldEqual, 12.5)
		})

		Convey("toggle follows the status", func() {
			So(c.Toggle(), ShouldBeNil)
			So(fake.Calls(), ShouldContain, "play")
			fake.Emit(engine.Event{Kind: engine.EventPlay})
			So(c.Toggle(), ShouldBeNil)
			So(fake.Count("pause"), ShouldEqual, 1)
		})

		Convey("fullscreen is driven by notifications", func() {
			So(c.ToggleFullscreen(), ShouldBeNil)
			So(c.State().Fullscreen, ShouldBeFalse)
			c.FullscreenChanged(true)
			So(c.State().Fullscreen, ShouldBeTrue)
		})

		Convey("command failures are returned as PlaybackError", func() {
			fake.CommandErr = errors.New("socket gone")
			err := c.Play()
			var pe *PlaybackError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.Message, ShouldEqual, "socket gone")
			So(c.State().Status, ShouldEqual, StatusReady)
		})

		Convey("buffered fraction follows the cache end", func() {
			fake.Emit(engine.Event{Kind: engine.EventBuffered, Value: 25})
			So(c.BufferedFraction(), ShouldEqual, 0.25)
			fake.Emit(engine.Event{Kind: engine.EventBuffered, Value: 250})
			So(c.BufferedFraction(), ShouldEqual, 1)
		})
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5.0, 0, 1), ShouldEqual, 1)
		So(Clamp(-5.0, 0, 1), ShouldEqual, 0)
		So(Clamp(math.NaN(), 0, 1), ShouldEqual, 0)
		So(Clamp(float32(0.5), 0, 1), ShouldEqual, float32(0.5))
	})
}

func TestBus(t *testing.T) {
	Convey("Bus", t, func() {
		b := NewBus()
		var order []int
		a := b.On(EventPlay, func(Event) { order = append(order, 1) })
		b.On(EventPlay, func(Event) { order = append(order, 2) })
		b.On(EventPause, func(Event) { order = append(order, 3) })
		So(b.Len(), ShouldEqual, 3)

		b.Emit(Event{Kind: EventPlay})
		So(order, ShouldResemble, []int{1, 2})

		b.Off(EventPlay, a)
		b.Off(EventPlay, 999)
		b.Emit(Event{Kind: EventPlay})
		So(order, ShouldResemble, []int{1, 2, 2})

		b.Clear()
		So(b.Len(), ShouldEqual, 0)
	})
}
