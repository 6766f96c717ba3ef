// Package engine abstracts the external decode and playback engine. The
// primary implementation drives mpv over its JSON-IPC socket.
package engine

import (
	"context"
	"fmt"
)

// EventKind identifies a normalized engine notification.
type EventKind int

const (
	EventLoadStart EventKind = iota + 1
	EventLoadedMetadata
	EventCanPlay
	EventWaiting
	EventPlay
	EventPause
	EventTimeUpdate
	EventDuration
	EventBuffered
	EventEnded
	EventVolume
	EventMute
	EventFullscreen
	EventError
)

var eventNames = map[EventKind]string{
	EventLoadStart:      "loadstart",
	EventLoadedMetadata: "loadedmetadata",
	EventCanPlay:        "canplay",
	EventWaiting:        "waiting",
	EventPlay:           "play",
	EventPause:          "pause",
	EventTimeUpdate:     "timeupdate",
	EventDuration:       "durationchange",
	EventBuffered:       "progress",
	EventEnded:          "ended",
	EventVolume:         "volumechange",
	EventMute:           "mutechange",
	EventFullscreen:     "fullscreenchange",
	EventError:          "error",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one notification from the engine. Value carries seconds for time
// events and a 0..1 level for volume; Flag carries booleans.
type Event struct {
	Kind  EventKind
	Value float64
	Flag  bool
	Err   error
}

// Handler receives engine events. Engines may call it from their own
// goroutine, never concurrently with itself.
type Handler func(Event)

// Engine is the set of transport commands the playback controller needs.
type Engine interface {
	// Load starts (or replaces) playback of url.
	Load(ctx context.Context, url string) error
	Play() error
	Pause() error
	// Seek moves to an absolute position in seconds.
	Seek(seconds float64) error
	// SetVolume sets the level in [0,1].
	SetVolume(level float64) error
	SetMuted(muted bool) error
	SetFullscreen(fullscreen bool) error
	// OnEvent installs the single event handler, replacing any previous one.
	OnEvent(h Handler)
	// Close stops the engine and releases every resource it holds.
	Close() error
}
