package memdom

import (
	"slices"
	"sync"

	"github.com/jackielii/pageswap"
)

// History is a session history stack. Back and Forward notify pop-state
// listeners; Push does not.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
	nextID  int
	popFns  map[int]func(string)
}

func NewHistory(initial string) *History {
	if initial == "" {
		initial = "/"
	}
	return &History{entries: []string{initial}, popFns: make(map[int]func(string))}
}

func (h *History) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push adds path after the current entry, dropping any forward entries.
func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

// Len is the number of entries in the stack.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the stack.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

func (h *History) Back() bool { return h.move(-1) }

func (h *History) Forward() bool { return h.move(1) }

func (h *History) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	path := h.entries[next]
	keys := make([]int, 0, len(h.popFns))
	for k := range h.popFns {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fns := make([]func(string), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, h.popFns[k])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
	return true
}

func (h *History) OnPopState(fn func(path string)) (stop func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.popFns[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.popFns, id)
	}
}

var _ pageswap.History = (*History)(nil)
