package visibility

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vhls-cli/vhls/log"
)

// DefaultThreshold is the visible ratio below which playback is paused.
const DefaultThreshold = 0.5

// Pauser is what the gate needs from the playback controller. There is
// deliberately no way for the gate to resume.
type Pauser interface {
	Paused() bool
	Pause() error
}

// Gate pauses playing media when its visible ratio drops below the
// threshold. Coming back into view clears the auto-paused flag and never
// resumes playback.
type Gate struct {
	pauser    Pauser
	threshold float64
	stop      func()

	mu         sync.Mutex
	visible    bool
	autoPaused bool
	closed     bool
}

// NewGate starts observing through obs.
func NewGate(obs Observer, p Pauser, threshold float64) (*Gate, error) {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	g := &Gate{pauser: p, threshold: threshold, visible: true}
	stop, err := obs.Observe([]float64{threshold}, g.onRatio)
	if err != nil {
		return nil, fmt.Errorf("observe visibility: %w", err)
	}
	g.stop = stop
	return g, nil
}

func (g *Gate) onRatio(ratio float64) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}

	pause := false
	switch below := ratio < g.threshold; {
	case below && g.visible:
		g.visible = false
		if !g.pauser.Paused() {
			g.autoPaused = true
			pause = true
		}
	case !below && !g.visible:
		g.visible = true
		g.autoPaused = false
	}
	g.mu.Unlock()

	if !pause {
		return
	}

	log.With(logrus.Fields{"ratio": ratio}).Info("out of view, pausing")
	if err := g.pauser.Pause(); err != nil {
		log.Warnf("visibility pause: %v", err)
	}
}

// AutoPaused reports whether the gate paused playback and the element has
// not come back into view since.
func (g *Gate) AutoPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.autoPaused
}

// Close stops observing. It is safe to call more than once.
func (g *Gate) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()

	g.stop()
}
