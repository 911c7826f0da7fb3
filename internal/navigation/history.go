// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package navigation

import "sync"

// Router is the underlying navigation mechanism the Navigator drives.
type Router interface {
	Push(path string)
	Replace(path string)
	Back()
	Forward()
	Current() string
}

// History is an in-process back/forward stack. Listeners registered with
// OnChange run after every move, outside the lock.
type History struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(path string)
}

// NewHistory starts a history at start.
func NewHistory(start string) *History {
	if start == "" {
		start = "/"
	}
	return &History{entries: []string{start}}
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push drops any forward entries and appends path.
func (h *History) Push(path string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
	h.mu.Unlock()
	h.emit(path)
}

// Replace overwrites the current entry.
func (h *History) Replace(path string) {
	h.mu.Lock()
	h.entries[h.index] = path
	h.mu.Unlock()
	h.emit(path)
}

// Back moves one entry back. At the first entry it does nothing.
func (h *History) Back() {
	h.move(-1)
}

// Forward moves one entry forward. At the last entry it does nothing.
func (h *History) Forward() {
	h.move(1)
}

func (h *History) move(delta int) {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return
	}
	h.index = next
	path := h.entries[next]
	h.mu.Unlock()
	h.emit(path)
}

func (h *History) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

func (h *History) CanGoForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Entries returns a copy of the stack and the current position.
func (h *History) Entries() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...), h.index
}

// OnChange registers fn to run with the new current path after every move.
func (h *History) OnChange(fn func(path string)) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners = append(h.listeners, listener{id: id, fn: fn})
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

func (h *History) emit(path string) {
	h.mu.Lock()
	fns := make([]func(string), len(h.listeners))
	for i, l := range h.listeners {
		fns[i] = l.fn
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(path)
	}
}
