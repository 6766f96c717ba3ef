// Package ui holds small bubbletea helpers shared by terminal views.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vhls-cli/vhls/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 3 * time.Second

// Model shows one transient notification next to the last line of a view.
type Model struct {
	notification string
	seq          int
}

// NotificationMsg sets the notification text.
type NotificationMsg string

// ClearNotificationMsg clears the notification set with the same seq.
type ClearNotificationMsg struct {
	seq int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

// Update consumes notification messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.seq++
		seq := m.seq
		return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{seq: seq}
		})
	case ClearNotificationMsg:
		// a newer notification outlives the timer of an older one
		if msg.seq == m.seq {
			m.notification = ""
		}
	}
	return nil
}

// Notification returns the visible text, empty when none.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
