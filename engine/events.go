package engine

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/vhls-cli/vhls/log"
)

// observed lists the mpv properties the listener subscribes to, by
// observe_property id.
var observed = []string{
	"pause",
	"time-pos",
	"duration",
	"eof-reached",
	"paused-for-cache",
	"demuxer-cache-time",
	"volume",
	"mute",
	"fullscreen",
}

// eventListener reads property changes from a persistent mpv connection.
// Observers are registered on that same connection since mpv only notifies
// the client that asked.
type eventListener struct {
	conn    net.Conn
	emit    func(Event)
	done    chan struct{}
	once    sync.Once
	closing chan struct{}
}

func startEventListener(socketPath string, emit func(Event)) (*eventListener, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, []any{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el := &eventListener{
		conn:    conn,
		emit:    emit,
		done:    make(chan struct{}),
		closing: make(chan struct{}),
	}
	go el.readLoop()

	log.Debugf("mpv event listener started on %s", socketPath)
	return el, nil
}

// Stop closes the connection and waits for the read loop to return.
func (el *eventListener) Stop() {
	el.once.Do(func() {
		close(el.closing)
		_ = el.conn.Close()
	})
	<-el.done
}

func (el *eventListener) readLoop() {
	defer close(el.done)

	reader := bufio.NewReader(el.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			select {
			case <-el.closing:
			default:
				log.Warnf("mpv event listener: %v", err)
			}
			return
		}

		var raw map[string]any
		if err := json.Unmarshal(line, &raw); err != nil {
			continue
		}

		if ev, ok := normalize(raw); ok {
			el.emit(ev)
		}
	}
}

// normalize maps one raw mpv message onto an Event. Command replies and
// properties that are not yet available yield false.
func normalize(raw map[string]any) (Event, bool) {
	kind, _ := raw["event"].(string)
	switch kind {
	case "start-file":
		return Event{Kind: EventLoadStart}, true
	case "file-loaded":
		return Event{Kind: EventLoadedMetadata}, true
	case "playback-restart":
		return Event{Kind: EventCanPlay}, true
	case "end-file":
		if reason, _ := raw["reason"].(string); reason == "error" {
			msg, _ := raw["file_error"].(string)
			if msg == "" {
				msg = "playback failed"
			}
			return Event{Kind: EventError, Err: errors.New(msg)}, true
		}
		return Event{}, false
	case "property-change":
		name, _ := raw["name"].(string)
		return normalizeProperty(name, raw["data"])
	default:
		return Event{}, false
	}
}

func normalizeProperty(name string, data any) (Event, bool) {
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return Event{}, false
		}
		if paused {
			return Event{Kind: EventPause, Flag: true}, true
		}
		return Event{Kind: EventPlay}, true
	case "time-pos":
		return floatEvent(EventTimeUpdate, data, 1)
	case "duration":
		return floatEvent(EventDuration, data, 1)
	case "demuxer-cache-time":
		return floatEvent(EventBuffered, data, 1)
	case "volume":
		return floatEvent(EventVolume, data, 100)
	case "eof-reached":
		if eof, _ := data.(bool); eof {
			return Event{Kind: EventEnded}, true
		}
		return Event{}, false
	case "paused-for-cache":
		waiting, ok := data.(bool)
		if !ok {
			return Event{}, false
		}
		if waiting {
			return Event{Kind: EventWaiting, Flag: true}, true
		}
		return Event{Kind: EventCanPlay}, true
	case "mute":
		return boolEvent(EventMute, data)
	case "fullscreen":
		return boolEvent(EventFullscreen, data)
	default:
		return Event{}, false
	}
}

func floatEvent(kind EventKind, data any, scale float64) (Event, bool) {
	v, ok := data.(float64)
	if !ok {
		return Event{}, false
	}
	return Event{Kind: kind, Value: v / scale}, true
}

func boolEvent(kind EventKind, data any) (Event, bool) {
	v, ok := data.(bool)
	if !ok {
		return Event{}, false
	}
	return Event{Kind: kind, Flag: v}, true
}
