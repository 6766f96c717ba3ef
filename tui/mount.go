package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/player"
	"github.com/vhls-cli/vhls/visibility"
)

// refreshMsg tells the program the mount has a new frame.
type refreshMsg struct{}

// frame is what the mount last received from the player.
type frame struct {
	ui         controls.UIState
	poster     string
	errTitle   string
	errMessage string
}

// mount is the terminal side of player.Mount. Player callbacks may arrive
// from any goroutine, including from inside Update, so it only stores the
// frame and wakes the program without blocking.
type mount struct {
	hub  *controls.InputHub
	feed *visibility.Feed

	mu    sync.Mutex
	frame frame
	send  func(tea.Msg)

	queued atomic.Bool
}

var _ player.Mount = (*mount)(nil)

func newMount() *mount {
	return &mount{
		hub:  controls.NewInputHub(),
		feed: visibility.NewFeed(),
	}
}

func (m *mount) attach(send func(tea.Msg)) {
	m.mu.Lock()
	m.send = send
	m.mu.Unlock()
	m.notify()
}

func (m *mount) detach() {
	m.mu.Lock()
	m.send = nil
	m.mu.Unlock()
}

func (m *mount) Render(ui controls.UIState) {
	m.mu.Lock()
	m.frame.ui = ui
	m.mu.Unlock()
	m.notify()
}

func (m *mount) SetPoster(url string) {
	m.mu.Lock()
	m.frame.poster = url
	m.mu.Unlock()
	m.notify()
}

func (m *mount) ShowError(title, message string) {
	m.mu.Lock()
	m.frame.errTitle, m.frame.errMessage = title, message
	m.mu.Unlock()
	m.notify()
}

func (m *mount) Input() controls.GlobalInput { return m.hub }

func (m *mount) Observer() visibility.Observer { return m.feed }

func (m *mount) snapshot() frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

// notify queues at most one refresh at a time.
func (m *mount) notify() {
	m.mu.Lock()
	send := m.send
	m.mu.Unlock()

	if send == nil || !m.queued.CompareAndSwap(false, true) {
		return
	}
	go send(refreshMsg{})
}

// refreshed is called by Update once a refresh was delivered.
func (m *mount) refreshed() {
	m.queued.Store(false)
}
