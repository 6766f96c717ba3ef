package visibility

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/engine/enginetest"
	"github.com/vhls-cli/vhls/playback"
)

type failingObserver struct{}

func (failingObserver) Observe([]float64, func(float64)) (func(), error) {
	return nil, errors.New("no viewport")
}

func TestGate(t *testing.T) {
	Convey("Given a playing controller behind a gate", t, func() {
		fake := enginetest.New()
		ctrl := playback.NewController(fake)
		So(ctrl.Load(context.Background(), "https://x/a.m3u8"), ShouldBeNil)
		fake.Emit(engine.Event{Kind: engine.EventLoadedMetadata})
		fake.Emit(engine.Event{Kind: engine.EventPlay})
		So(ctrl.State().Status, ShouldEqual, playback.StatusPlaying)

		feed := NewFeed()
		gate, err := NewGate(feed, ctrl, 0.5)
		So(err, ShouldBeNil)
		defer gate.Close()

		Convey("Dropping below half pauses exactly once", func() {
			feed.Report(0.4)
			feed.Report(0.1)
			feed.Report(0)
			So(fake.Count("pause"), ShouldEqual, 1)
			So(gate.AutoPaused(), ShouldBeTrue)

			Convey("and coming back never resumes", func() {
				fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
				feed.Report(0.9)
				feed.Report(1)
				So(fake.Count("play"), ShouldEqual, 0)
				So(gate.AutoPaused(), ShouldBeFalse)
				So(ctrl.State().Status, ShouldEqual, playback.StatusPaused)
			})
		})

		Convey("Staying above the threshold does nothing", func() {
			feed.Report(0.7)
			feed.Report(0.5)
			So(fake.Count("pause"), ShouldEqual, 0)
		})

		Convey("Leaving the view while buffering still pauses", func() {
			fake.Emit(engine.Event{Kind: engine.EventWaiting, Flag: true})
			So(ctrl.State().Status, ShouldEqual, playback.StatusLoading)
			feed.Report(0)
			So(fake.Count("pause"), ShouldEqual, 1)
			So(gate.AutoPaused(), ShouldBeTrue)
		})

		Convey("Leaving the view while paused does not pause again", func() {
			fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			feed.Report(0.2)
			So(fake.Count("pause"), ShouldEqual, 0)
			So(gate.AutoPaused(), ShouldBeFalse)
		})

		Convey("Close stops observing", func() {
			gate.Close()
			So(feed.Observers(), ShouldEqual, 0)
			feed.Report(0)
			So(fake.Count("pause"), ShouldEqual, 0)
		})
	})

	Convey("A failing observer is reported", t, func() {
		_, err := NewGate(failingObserver{}, nil, 0.5)
		So(err, ShouldNotBeNil)
	})
}
