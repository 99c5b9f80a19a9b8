// Package history keeps the bounded log of manager actions.
//
// The buffer evicts from the oldest end when full and reads from the newest
// end, so Pop and GetRecent see entries in LIFO order while memory stays
// bounded by the capacity.
package history

import "github.com/spec-kit/ticket-queue/internal/domain"

// DefaultCapacity is the number of actions retained when no capacity is given.
const DefaultCapacity = 50

// ActionHistory is a fixed-capacity ring buffer of actions.
// It is not safe for concurrent use.
type ActionHistory struct {
	buf   []domain.Action
	start int
	count int
}

// NewActionHistory creates an empty history. capacity <= 0 selects DefaultCapacity.
func NewActionHistory(capacity int) *ActionHistory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ActionHistory{buf: make([]domain.Action, capacity)}
}

// Push appends action, evicting the oldest entry when at capacity.
func (h *ActionHistory) Push(action domain.Action) {
	if h.count == len(h.buf) {
		h.buf[h.start] = domain.Action{}
		h.start = (h.start + 1) % len(h.buf)
		h.count--
	}
	h.buf[h.index(h.count)] = action
	h.count++
}

// Pop removes and returns the most recent action.
func (h *ActionHistory) Pop() (domain.Action, bool) {
	if h.count == 0 {
		return domain.Action{}, false
	}
	last := h.index(h.count - 1)
	action := h.buf[last]
	h.buf[last] = domain.Action{}
	h.count--
	return action, true
}

// Peek returns the most recent action without removing it.
func (h *ActionHistory) Peek() (domain.Action, bool) {
	if h.count == 0 {
		return domain.Action{}, false
	}
	return h.buf[h.index(h.count-1)], true
}

// GetRecent returns up to n actions, most recent first.
func (h *ActionHistory) GetRecent(n int) []domain.Action {
	if n <= 0 {
		return []domain.Action{}
	}
	if n > h.count {
		n = h.count
	}
	out := make([]domain.Action, 0, n)
	for i := h.count - 1; i >= h.count-n; i-- {
		out = append(out, h.buf[h.index(i)])
	}
	return out
}

// All returns every retained action, most recent first.
func (h *ActionHistory) All() []domain.Action {
	return h.GetRecent(h.count)
}

// Len returns the number of retained actions.
func (h *ActionHistory) Len() int {
	return h.count
}

// Cap returns the capacity.
func (h *ActionHistory) Cap() int {
	return len(h.buf)
}

// IsEmpty reports whether no actions are retained.
func (h *ActionHistory) IsEmpty() bool {
	return h.count == 0
}

// Clear drops every retained action.
func (h *ActionHistory) Clear() {
	for i := range h.buf {
		h.buf[i] = domain.Action{}
	}
	h.start = 0
	h.count = 0
}

func (h *ActionHistory) index(offset int) int {
	return (h.start + offset) % len(h.buf)
}
