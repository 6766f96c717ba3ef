package playback

import "sync"

// EventKind names a normalized playback event.
type EventKind string

const (
	EventLoadStart        EventKind = "loadstart"
	EventLoadedMetadata   EventKind = "loadedmetadata"
	EventCanPlay          EventKind = "canplay"
	EventPlay             EventKind = "play"
	EventPause            EventKind = "pause"
	EventWaiting          EventKind = "waiting"
	EventTimeUpdate       EventKind = "timeupdate"
	EventDurationChange   EventKind = "durationchange"
	EventProgress         EventKind = "progress"
	EventEnded            EventKind = "ended"
	EventVolumeChange     EventKind = "volumechange"
	EventFullscreenChange EventKind = "fullscreenchange"
	EventError            EventKind = "error"
)

// Event carries the state right after the change. Err is set for EventError.
type Event struct {
	Kind  EventKind
	State State
	Err   *PlaybackError
}

type Handler func(Event)

// ListenerID identifies a registration for Off.
type ListenerID uint64

type listener struct {
	id      ListenerID
	handler Handler
}

// Bus is a typed publish/subscribe registry. Handlers run on the emitting
// goroutine, in registration order, outside the bus lock.
type Bus struct {
	mu        sync.Mutex
	next      ListenerID
	listeners map[EventKind][]listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[EventKind][]listener)}
}

// On registers h for kind.
func (b *Bus) On(kind EventKind, h Handler) ListenerID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.listeners[kind] = append(b.listeners[kind], listener{id: b.next, handler: h})
	return b.next
}

// Off removes a registration. Unknown ids are ignored.
func (b *Bus) Off(kind EventKind, id ListenerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			b.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit calls every handler registered for ev.Kind.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	ls := append([]listener(nil), b.listeners[ev.Kind]...)
	b.mu.Unlock()

	for _, l := range ls {
		l.handler(ev)
	}
}

// Len reports the number of live registrations.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, ls := range b.listeners {
		n += len(ls)
	}
	return n
}

// Clear drops every registration.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = make(map[EventKind][]listener)
}
