package controls

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/engine/enginetest"
	"github.com/vhls-cli/vhls/playback"
)

// eventually polls cond; mock clock callbacks run on their own goroutines.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

// settle gives stray timer goroutines a chance to run before a negative
// assertion.
func settle() {
	time.Sleep(20 * time.Millisecond)
}

type renders struct {
	mu     sync.Mutex
	states []UIState
}

func (r *renders) render(ui UIState) {
	r.mu.Lock()
	r.states = append(r.states, ui)
	r.mu.Unlock()
}

func (r *renders) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *renders) sawHover(mode HoverMode, from int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.states[from:] {
		if s.Hover == mode {
			return true
		}
	}
	return false
}

type fixture struct {
	mock *clock.Mock
	fake *enginetest.Fake
	ctrl *playback.Controller
	hub  *InputHub
	out  *renders
	s    *Surface
}

func newFixture() *fixture {
	f := &fixture{
		mock: clock.NewMock(),
		fake: enginetest.New(),
		hub:  NewInputHub(),
		out:  &renders{},
	}
	f.ctrl = playback.NewController(f.fake)
	f.s = New(f.ctrl, Config{
		Clock:        f.mock,
		Input:        f.hub,
		Renderer:     f.out.render,
		ShowControls: true,
	})
	So(f.ctrl.Load(context.Background(), "https://x/a.m3u8"), ShouldBeNil)
	f.fake.Emit(engine.Event{Kind: engine.EventDuration, Value: 100})
	f.fake.Emit(engine.Event{Kind: engine.EventLoadedMetadata})
	return f
}

func (f *fixture) play() {
	f.fake.Emit(engine.Event{Kind: engine.EventPlay})
	So(f.s.State().Status, ShouldEqual, playback.StatusPlaying)
}

func (f *fixture) pause() {
	f.fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
}

func (f *fixture) hover() HoverMode {
	return f.s.State().Hover
}

func TestHover(t *testing.T) {
	Convey("Given a surface", t, func() {
		f := newFixture()
		defer f.s.Destroy()

		So(f.hover(), ShouldEqual, HoverInactive)

		Convey("Entering activates immediately", func() {
			f.s.PointerEnter()
			So(f.hover(), ShouldEqual, HoverActive)

			Convey("Leaving goes inactive after the debounce", func() {
				f.s.PointerLeave()
				So(f.hover(), ShouldEqual, HoverPendingInactive)
				f.mock.Add(99 * time.Millisecond)
				settle()
				So(f.hover(), ShouldEqual, HoverPendingInactive)

				f.mock.Add(time.Millisecond)
				So(eventually(func() bool { return f.hover() == HoverInactive }), ShouldBeTrue)
			})

			Convey("Re-entering within the debounce never flickers to inactive", func() {
				from := f.out.len()
				f.s.PointerLeave()
				f.mock.Add(60 * time.Millisecond)
				f.s.PointerEnter()
				So(f.s.Pending(taskHover), ShouldBeFalse)

				f.mock.Add(time.Second)
				settle()
				So(f.hover(), ShouldEqual, HoverActive)
				So(f.out.sawHover(HoverInactive, from), ShouldBeFalse)
			})

			Convey("Repeated leaves keep a single debounce timer", func() {
				f.s.PointerLeave()
				f.s.PointerMove()
				f.s.PointerLeave()
				So(f.s.sched.Len(), ShouldEqual, 1)
			})
		})
	})
}

func TestAutoHide(t *testing.T) {
	Convey("Given a playing surface with the pointer inside", t, func() {
		f := newFixture()
		defer f.s.Destroy()
		f.play()
		f.s.PointerEnter()
		So(f.s.Pending(taskAutoHide), ShouldBeTrue)

		Convey("3000ms without activity hides through the hover debounce", func() {
			f.mock.Add(2999 * time.Millisecond)
			settle()
			So(f.hover(), ShouldEqual, HoverActive)

			f.mock.Add(time.Millisecond)
			So(eventually(func() bool { return f.hover() == HoverPendingInactive }), ShouldBeTrue)
			So(f.s.Pending(taskHover), ShouldBeTrue)
			So(f.s.State().ControlsVisible(), ShouldBeTrue)

			f.mock.Add(99 * time.Millisecond)
			settle()
			So(f.hover(), ShouldEqual, HoverPendingInactive)

			f.mock.Add(time.Millisecond)
			So(eventually(func() bool { return f.hover() == HoverInactive }), ShouldBeTrue)
			So(f.s.State().ControlsVisible(), ShouldBeFalse)

			Convey("and movement brings them back", func() {
				f.s.PointerMove()
				So(f.hover(), ShouldEqual, HoverActive)
				So(f.s.State().ControlsVisible(), ShouldBeTrue)
			})
		})

		Convey("Activity during the auto-hide debounce cancels it", func() {
			f.mock.Add(3000 * time.Millisecond)
			So(eventually(func() bool { return f.hover() == HoverPendingInactive }), ShouldBeTrue)
			f.s.PointerMove()
			So(f.hover(), ShouldEqual, HoverActive)
			f.mock.Add(100 * time.Millisecond)
			settle()
			So(f.hover(), ShouldEqual, HoverActive)
		})

		Convey("Pointer movement restarts the countdown", func() {
			f.mock.Add(2000 * time.Millisecond)
			f.s.PointerMove()
			f.mock.Add(2000 * time.Millisecond)
			settle()
			So(f.hover(), ShouldEqual, HoverActive)

			f.mock.Add(1000 * time.Millisecond)
			So(eventually(func() bool { return f.hover() == HoverPendingInactive }), ShouldBeTrue)
			f.mock.Add(100 * time.Millisecond)
			So(eventually(func() bool { return f.hover() == HoverInactive }), ShouldBeTrue)
		})

		Convey("Pausing cancels it", func() {
			f.pause()
			So(f.s.Pending(taskAutoHide), ShouldBeFalse)
			f.mock.Add(10 * time.Second)
			settle()
			So(f.hover(), ShouldEqual, HoverActive)
			So(f.s.State().ControlsVisible(), ShouldBeTrue)

			Convey("and activity while paused does not arm it", func() {
				f.s.PointerMove()
				So(f.s.Pending(taskAutoHide), ShouldBeFalse)
			})
		})

		Convey("Ending cancels it", func() {
			f.fake.Emit(engine.Event{Kind: engine.EventEnded})
			So(f.s.Pending(taskAutoHide), ShouldBeFalse)
			So(f.s.State().Attributes()[AttrStatus], ShouldEqual, "paused")
		})
	})
}

func TestDestroy(t *testing.T) {
	Convey("Given a surface with every timer armed", t, func() {
		f := newFixture()
		f.play()
		f.s.TimelineDown(Point{X: 10}, Rect{Width: 100})
		f.s.PointerEnter()
		f.s.PointerLeave()
		So(f.s.sched.Len(), ShouldEqual, 2)
		So(f.hub.Listeners(), ShouldEqual, 2)

		Convey("Destroy leaves nothing that can fire", func() {
			f.s.Destroy()
			before := f.out.len()
			state := f.s.State()

			So(f.s.sched.Len(), ShouldEqual, 0)
			So(f.hub.Listeners(), ShouldEqual, 0)

			f.mock.Add(time.Minute)
			f.hub.Move(Point{X: 90})
			f.fake.Emit(engine.Event{Kind: engine.EventPause, Flag: true})
			settle()

			So(f.out.len(), ShouldEqual, before)
			So(f.s.State(), ShouldResemble, state)
			So(f.s.State().Hover, ShouldEqual, HoverPendingInactive)

			f.s.PointerEnter()
			f.s.Destroy()
			So(f.out.len(), ShouldEqual, before)
		})
	})
}

func TestDragSeek(t *testing.T) {
	Convey("Given a loaded surface with a 100s video", t, func() {
		f := newFixture()
		defer f.s.Destroy()
		track := Rect{X: 10, Width: 200}

		Convey("Pointer down seeks and opens a session with global listeners", func() {
			f.s.TimelineDown(Point{X: 60}, track)
			So(f.fake.SeekedTo(), ShouldEqual, 25)
			So(f.s.State().Dragging, ShouldBeTrue)
			So(f.s.State().Attributes()[AttrDragging], ShouldEqual, "true")
			So(f.hub.Listeners(), ShouldEqual, 2)

			Convey("Moves anywhere seek live, clamped to the track", func() {
				f.hub.Move(Point{X: 110})
				So(f.fake.SeekedTo(), ShouldEqual, 50)
				So(f.ctrl.CurrentTime(), ShouldEqual, 50)

				f.hub.Move(Point{X: 500})
				So(f.fake.SeekedTo(), ShouldEqual, 100)
				f.hub.Move(Point{X: -500})
				So(f.fake.SeekedTo(), ShouldEqual, 0)
			})

			Convey("Release removes the listeners", func() {
				f.hub.Up(Point{X: 60})
				So(f.s.Dragging(), ShouldBeFalse)
				So(f.hub.Listeners(), ShouldEqual, 0)

				seeks := f.fake.Count("seek")
				f.hub.Move(Point{X: 150})
				So(f.fake.Count("seek"), ShouldEqual, seeks)
			})

			Convey("A second pointer down replaces the session", func() {
				f.s.TimelineDown(Point{X: 10}, track)
				So(f.hub.Listeners(), ShouldEqual, 2)
				So(f.fake.SeekedTo(), ShouldEqual, 0)
			})
		})
	})
}

func TestVolume(t *testing.T) {
	Convey("Given a muted surface", t, func() {
		f := newFixture()
		defer f.s.Destroy()
		So(f.ctrl.SetMuted(true), ShouldBeNil)
		So(f.s.State().Muted, ShouldBeTrue)
		So(f.s.State().VolumeFill, ShouldEqual, 0)

		Convey("A press on the slider sets 1 - offset/height and unmutes", func() {
			f.s.VolumeAt(25, 100)
			So(f.ctrl.Volume(), ShouldEqual, 0.75)
			So(f.ctrl.Muted(), ShouldBeFalse)
			So(f.s.State().VolumeFill, ShouldEqual, 0.75)

			f.s.VolumeAt(0, 100)
			So(f.ctrl.Volume(), ShouldEqual, 1)
			f.s.VolumeAt(100, 100)
			So(f.ctrl.Volume(), ShouldEqual, 0)
			So(f.s.State().Attributes()[AttrMuted], ShouldEqual, "true")
			f.s.VolumeAt(150, 100)
			So(f.ctrl.Volume(), ShouldEqual, 0)
		})

		Convey("Dragging the slider follows the inverted axis", func() {
			f.s.VolumeDown(Point{Y: 50}, Rect{Y: 0, Height: 100})
			So(f.ctrl.Volume(), ShouldEqual, 0.5)
			So(f.s.State().Dragging, ShouldBeFalse)
			f.hub.Move(Point{Y: 10})
			So(f.ctrl.Volume(), ShouldAlmostEqual, 0.9)
			f.hub.Up(Point{Y: 10})
			So(f.hub.Listeners(), ShouldEqual, 0)
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("Given a playing surface", t, func() {
		f := newFixture()
		defer f.s.Destroy()
		f.play()

		Convey("Bound keys drive the transport", func() {
			So(f.s.Key("right"), ShouldBeTrue)
			So(f.fake.SeekedTo(), ShouldEqual, 5)
			So(f.s.Key("left"), ShouldBeTrue)
			So(f.fake.SeekedTo(), ShouldEqual, 0)

			So(f.s.Key("m"), ShouldBeTrue)
			So(f.ctrl.Muted(), ShouldBeTrue)

			So(f.s.Key("down"), ShouldBeTrue)
			So(f.ctrl.Volume(), ShouldAlmostEqual, 0.9)

			So(f.s.Key(" "), ShouldBeTrue)
			So(f.fake.Calls(), ShouldContain, "pause")
		})

		Convey("Keys count as activity", func() {
			f.mock.Add(2500 * time.Millisecond)
			f.s.Key("f")
			f.mock.Add(2500 * time.Millisecond)
			settle()
			So(f.hover(), ShouldEqual, HoverActive)
		})

		Convey("Unbound keys are ignored but still count as activity", func() {
			f.mock.Add(2500 * time.Millisecond)
			calls := len(f.fake.Calls())
			So(f.s.Key("z"), ShouldBeFalse)
			So(f.fake.Calls(), ShouldHaveLength, calls)
			f.mock.Add(2500 * time.Millisecond)
			settle()
			So(f.hover(), ShouldEqual, HoverActive)
		})
	})
}

func TestNoticeAndAttributes(t *testing.T) {
	Convey("Given a surface", t, func() {
		f := newFixture()
		defer f.s.Destroy()

		Convey("An error shows a notice until the next load", func() {
			f.ctrl.Fail(errors.New("stream gone"))
			ui := f.s.State()
			So(ui.Notice, ShouldEqual, "stream gone")
			So(ui.Attributes()[AttrStatus], ShouldEqual, "error")

			So(f.ctrl.Load(context.Background(), "https://x/b.m3u8"), ShouldBeNil)
			So(f.s.State().Notice, ShouldBeEmpty)
		})

		Convey("Attributes cover the declared set", func() {
			attrs := f.s.State().Attributes()
			So(attrs, ShouldContainKey, AttrStatus)
			So(attrs, ShouldContainKey, AttrActivated)
			So(attrs, ShouldContainKey, AttrHover)
			So(attrs, ShouldContainKey, AttrMuted)
			So(attrs, ShouldContainKey, AttrFullscreen)
			So(attrs, ShouldContainKey, AttrDragging)
			So(attrs[AttrStatus], ShouldEqual, "ready")
			So(attrs[AttrActivated], ShouldEqual, "false")
		})

		Convey("Unchanged snapshots are not re-rendered", func() {
			n := f.out.len()
			f.s.PointerEnter()
			f.s.PointerEnter()
			f.s.PointerMove()
			So(f.out.len(), ShouldEqual, n+1)
		})
	})
}

func TestFormatTime(t *testing.T) {
	Convey("FormatTime", t, func() {
		So(FormatTime(math.NaN()), ShouldEqual, "0:00")
		So(FormatTime(math.Inf(1)), ShouldEqual, "0:00")
		So(FormatTime(-3), ShouldEqual, "0:00")
		So(FormatTime(0), ShouldEqual, "0:00")
		So(FormatTime(9.9), ShouldEqual, "0:09")
		So(FormatTime(61), ShouldEqual, "1:01")
		So(FormatTime(600), ShouldEqual, "10:00")
		So(FormatTime(3661), ShouldEqual, "1:01:01")
		So(FormatTime(36000), ShouldEqual, "10:00:00")
	})
}

func TestScheduler(t *testing.T) {
	Convey("Scheduler", t, func() {
		mock := clock.NewMock()
		s := NewScheduler(mock)
		var mu sync.Mutex
		fired := map[string]int{}
		count := func(name string) int {
			mu.Lock()
			defer mu.Unlock()
			return fired[name]
		}
		task := func(name string) func() {
			return func() {
				mu.Lock()
				fired[name]++
				mu.Unlock()
			}
		}

		Convey("Re-scheduling replaces the pending task", func() {
			s.Schedule("a", time.Second, task("first"))
			s.Schedule("a", 2*time.Second, task("second"))
			So(s.Len(), ShouldEqual, 1)

			mock.Add(3 * time.Second)
			So(eventually(func() bool { return count("second") == 1 }), ShouldBeTrue)
			settle()
			So(count("first"), ShouldEqual, 0)
			So(s.Pending("a"), ShouldBeFalse)
		})

		Convey("Close cancels everything", func() {
			s.Schedule("a", time.Second, task("a"))
			s.Schedule("b", time.Second, task("b"))
			s.Close()
			s.Schedule("c", time.Second, task("c"))
			mock.Add(time.Minute)
			settle()
			So(count("a")+count("b")+count("c"), ShouldEqual, 0)
			So(s.Len(), ShouldEqual, 0)
		})
	})
}
