package controls

import "sync"

// Point is a pointer position in the host's coordinate space.
type Point struct {
	X, Y float64
}

// Rect is a widget's bounds in the same space as Point.
type Rect struct {
	X, Y, Width, Height float64
}

// PointerHandler receives global pointer notifications.
type PointerHandler func(Point)

// GlobalInput is the input surface that sees pointer events anywhere, not
// only over a widget. Each Add returns the function that removes the
// listener.
type GlobalInput interface {
	AddPointerMove(h PointerHandler) (remove func())
	AddPointerUp(h PointerHandler) (remove func())
}

// InputHub is a GlobalInput fed by the host with every pointer move and
// release it sees.
type InputHub struct {
	mu   sync.Mutex
	next int
	move map[int]PointerHandler
	up   map[int]PointerHandler
}

var _ GlobalInput = (*InputHub)(nil)

func NewInputHub() *InputHub {
	return &InputHub{
		move: make(map[int]PointerHandler),
		up:   make(map[int]PointerHandler),
	}
}

func (h *InputHub) AddPointerMove(fn PointerHandler) func() {
	return h.add(h.move, fn)
}

func (h *InputHub) AddPointerUp(fn PointerHandler) func() {
	return h.add(h.up, fn)
}

func (h *InputHub) add(set map[int]PointerHandler, fn PointerHandler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	set[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(set, id)
			h.mu.Unlock()
		})
	}
}

// Move dispatches a pointer move to every listener.
func (h *InputHub) Move(p Point) {
	for _, fn := range h.snapshot(h.move) {
		fn(p)
	}
}

// Up dispatches a pointer release to every listener.
func (h *InputHub) Up(p Point) {
	for _, fn := range h.snapshot(h.up) {
		fn(p)
	}
}

// Listeners is the number of installed move and up listeners.
func (h *InputHub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.move) + len(h.up)
}

func (h *InputHub) snapshot(set map[int]PointerHandler) []PointerHandler {
	h.mu.Lock()
	defer h.mu.Unlock()

	fns := make([]PointerHandler, 0, len(set))
	for _, fn := range set {
		fns = append(fns, fn)
	}
	return fns
}
