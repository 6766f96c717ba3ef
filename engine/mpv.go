package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/vhls-cli/vhls/constant"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

var (
	ErrNotRunning = errors.New("mpv is not running")
	ErrClosed     = errors.New("mpv engine closed")
)

// MPV implements Engine using mpv's JSON-IPC protocol. mpv is started idle
// on the first Load and reused for later loads.
type MPV struct {
	binary     string
	extraArgs  []string
	socketPath string
	attached   bool

	cmd      *exec.Cmd
	exited   chan struct{}
	listener *eventListener

	handler atomic.Pointer[Handler]
	ready   atomic.Bool
	closing atomic.Bool

	mu    sync.Mutex // lifecycle
	ipcMu sync.Mutex // socket writes
}

// MPVOption configures an MPV engine.
type MPVOption func(*MPV)

// WithBinary sets the mpv executable. Defaults to "mpv" from PATH.
func WithBinary(path string) MPVOption {
	return func(m *MPV) { m.binary = path }
}

// WithArgs appends extra command line arguments.
func WithArgs(args ...string) MPVOption {
	return func(m *MPV) { m.extraArgs = append(m.extraArgs, args...) }
}

// WithSocket attaches to an mpv already listening on socketPath instead of
// spawning one. Close leaves that process running.
func WithSocket(socketPath string) MPVOption {
	return func(m *MPV) {
		m.socketPath = socketPath
		m.attached = true
	}
}

// NewMPV creates an engine; no process is started until Load.
func NewMPV(opts ...MPVOption) *MPV {
	m := &MPV{
		binary: "mpv",
		exited: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnEvent installs h as the event handler.
func (m *MPV) OnEvent(h Handler) {
	m.handler.Store(&h)
}

func (m *MPV) dispatch(ev Event) {
	if m.closing.Load() {
		return
	}
	if h := m.handler.Load(); h != nil && *h != nil {
		(*h)(ev)
	}
}

// Load starts mpv if needed and replaces the current file with rawURL.
func (m *MPV) Load(ctx context.Context, rawURL string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closing.Load() {
		return ErrClosed
	}

	if err := m.ensureRunning(ctx); err != nil {
		return err
	}

	_, err = m.sendCommand("loadfile", safeURL, "replace")
	return err
}

func (m *MPV) ensureRunning(ctx context.Context) error {
	if m.ready.Load() {
		return nil
	}

	if !m.attached {
		if err := m.spawn(); err != nil {
			return err
		}
	}

	if err := m.waitForSocket(ctx); err != nil {
		if !m.attached {
			m.killOrphan()
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	listener, err := startEventListener(m.socketPath, m.dispatch)
	if err != nil {
		return err
	}
	m.listener = listener
	m.ready.Store(true)
	return nil
}

func (m *MPV) spawn() error {
	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%s.sock", constant.App, uuid.NewString()))

	// Only IPC and window flags; the user's mpv.conf decides the rest.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + m.socketPath,
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
	}
	args = append(args, m.extraArgs...)

	m.cmd = exec.Command(m.binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process; an exit we did not ask for is a playback failure.
	m.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		err := cmd.Wait()
		close(exited)
		if !m.closing.Load() {
			m.ready.Store(false)
			msg := "mpv exited"
			if err != nil {
				msg = fmt.Sprintf("mpv exited: %v", err)
			}
			m.dispatch(Event{Kind: EventError, Err: errors.New(msg)})
		}
	}(m.cmd, m.exited)

	log.Infof("mpv started with ipc socket %s", m.socketPath)
	return nil
}

// waitForSocket polls until the IPC socket accepts connections.
func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}

		timer := time.NewTimer(socketWaitDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-m.exitedIfSpawned():
			timer.Stop()
			return fmt.Errorf("mpv exited before socket was ready")
		case <-timer.C:
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// exitedIfSpawned returns a channel that never fires for attached engines.
func (m *MPV) exitedIfSpawned() <-chan struct{} {
	if m.attached || m.cmd == nil {
		return nil
	}
	return m.exited
}

func (m *MPV) killOrphan() {
	if m.cmd == nil || m.cmd.Process == nil {
		return
	}
	select {
	case <-m.exited:
	default:
		log.Warnf("killing mpv: socket never became ready")
		m.closing.Store(true)
		_ = killProcess(m.cmd)
		<-m.exited
		m.closing.Store(false)
	}
	m.cmd = nil
}

// Wait returns a channel that is closed when a spawned mpv exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) command(args ...any) error {
	if m.closing.Load() {
		return ErrClosed
	}
	if !m.ready.Load() {
		return ErrNotRunning
	}
	_, err := m.sendCommand(args...)
	return err
}

func (m *MPV) Play() error {
	return m.command("set_property", "pause", false)
}

func (m *MPV) Pause() error {
	return m.command("set_property", "pause", true)
}

func (m *MPV) Seek(seconds float64) error {
	return m.command("seek", seconds, "absolute")
}

func (m *MPV) SetVolume(level float64) error {
	return m.command("set_property", "volume", level*100)
}

func (m *MPV) SetMuted(muted bool) error {
	return m.command("set_property", "mute", muted)
}

func (m *MPV) SetFullscreen(fullscreen bool) error {
	return m.command("set_property", "fullscreen", fullscreen)
}

// Close stops the listener, quits a spawned mpv (killing it after a grace
// period) and removes its socket. It is safe to call more than once.
func (m *MPV) Close() error {
	if m.closing.Swap(true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result *multierror.Error

	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if !m.attached && m.cmd != nil {
		if m.ready.Load() {
			_, _ = m.sendCommand("quit")
		}

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			if err := killProcess(m.cmd); err != nil {
				result = multierror.Append(result, fmt.Errorf("kill mpv: %w", err))
			}
			<-m.exited
		}

		if err := os.Remove(m.socketPath); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, fmt.Errorf("remove socket: %w", err))
		}
	}

	m.ready.Store(false)
	return result.ErrorOrNil()
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv and
// cannot be mistaken for a flag.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
