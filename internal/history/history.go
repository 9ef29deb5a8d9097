// Package history keeps an undo/redo stack of canvas snapshots.
//
// A History is a fixed-capacity ring buffer plus a cursor pointing at the
// current snapshot. It lives for one editing session and is never persisted.
package history

import (
	"sync"

	"github.com/starford/canvas/internal/models"
)

// DefaultMaxSteps is the capacity used when New is given a non-positive size.
const DefaultMaxSteps = 50

// History is safe for concurrent use.
type History struct {
	mu     sync.Mutex
	buf    []models.Graph
	start  int // ring index of the oldest snapshot
	size   int // number of live snapshots
	cursor int // logical index of the current snapshot, -1 when empty
}

// New returns an empty history holding at most maxSteps snapshots.
func New(maxSteps int) *History {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &History{buf: make([]models.Graph, maxSteps), cursor: -1}
}

// Save drops every snapshot after the cursor, then appends a deep copy of g
// and makes it current. When the buffer is full the oldest snapshot is evicted.
func (h *History) Save(g models.Graph) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.size = h.cursor + 1
	if h.size == len(h.buf) {
		h.buf[h.start] = models.Graph{}
		h.start = (h.start + 1) % len(h.buf)
		h.size--
		h.cursor--
	}
	h.buf[h.slot(h.size)] = g.Clone()
	h.size++
	h.cursor++
}

// Undo moves the cursor back one step and returns that snapshot. It returns
// false, leaving the cursor alone, when already at the oldest snapshot.
func (h *History) Undo() (models.Graph, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor <= 0 {
		return models.Graph{}, false
	}
	h.cursor--
	return h.buf[h.slot(h.cursor)].Clone(), true
}

// Redo moves the cursor forward one step and returns that snapshot. It returns
// false when already at the newest snapshot.
func (h *History) Redo() (models.Graph, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= h.size-1 {
		return models.Graph{}, false
	}
	h.cursor++
	return h.buf[h.slot(h.cursor)].Clone(), true
}

// Current returns the snapshot under the cursor.
func (h *History) Current() (models.Graph, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		return models.Graph{}, false
	}
	return h.buf[h.slot(h.cursor)].Clone(), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < h.size-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// Cursor returns the logical index of the current snapshot, or -1 when empty.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Capacity returns the maximum number of snapshots kept.
func (h *History) Capacity() int {
	return len(h.buf)
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.buf {
		h.buf[i] = models.Graph{}
	}
	h.start, h.size, h.cursor = 0, 0, -1
}

func (h *History) slot(logical int) int {
	return (h.start + logical) % len(h.buf)
}
