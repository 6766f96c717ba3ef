// Package visibility pauses playback when the player leaves the viewport.
package visibility

import "sync"

// Observer reports the visible ratio of the observed element whenever it
// crosses one of thresholds. The returned stop function ends the
// observation.
type Observer interface {
	Observe(thresholds []float64, fn func(ratio float64)) (stop func(), err error)
}

// Feed is an Observer driven by the host, which calls Report with the
// current visible ratio (for a terminal, 1 when focused and 0 when not).
type Feed struct {
	mu   sync.Mutex
	next int
	subs map[int]feedSub
	last float64
}

type feedSub struct {
	thresholds []float64
	fn         func(float64)
}

var _ Observer = (*Feed)(nil)

// NewFeed starts fully visible.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]feedSub), last: 1}
}

func (f *Feed) Observe(thresholds []float64, fn func(float64)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	id := f.next
	f.subs[id] = feedSub{thresholds: thresholds, fn: fn}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}, nil
}

// Report records ratio and notifies observers for which it crossed a
// threshold.
func (f *Feed) Report(ratio float64) {
	f.mu.Lock()
	prev := f.last
	f.last = ratio
	var notify []func(float64)
	for _, sub := range f.subs {
		if crossed(prev, ratio, sub.thresholds) {
			notify = append(notify, sub.fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range notify {
		fn(ratio)
	}
}

// Observers is the number of live observations.
func (f *Feed) Observers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func crossed(prev, cur float64, thresholds []float64) bool {
	for _, t := range thresholds {
		if (prev < t) != (cur < t) {
			return true
		}
	}
	return false
}
