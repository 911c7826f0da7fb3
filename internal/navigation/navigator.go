// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package navigation is the façade every navigation goes through.
//
// While the editor is clean, calls pass straight to the Router. While it is
// dirty, the attempt is kept as the single pending Intent and the Prompter is
// opened; a later attempt replaces the pending one. Resume replays the pending
// intent at most once.
package navigation

import (
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/metrics"
)

// DirtyReader reports unsaved changes. *dirty.State implements it.
type DirtyReader interface {
	IsDirty() bool
}

// Stepper is implemented by routers that know whether a history step can
// move. *History implements it.
type Stepper interface {
	CanGoBack() bool
	CanGoForward() bool
}

// Prompter is opened when a navigation is deferred. The confirmation dialog
// implements it.
type Prompter interface {
	Open(Intent)
}

// Option configures a Navigator.
type Option func(*Navigator)

func WithLogger(l *pterm.Logger) Option {
	return func(n *Navigator) { n.log = logging.OrNop(l) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Navigator) { n.metrics = m }
}

// WithOrigin sets the origin links are resolved against. Links to any other
// origin are external.
func WithOrigin(origin *url.URL) Option {
	return func(n *Navigator) { n.origin = origin }
}

// Navigator guards a Router with the unsaved-changes check.
type Navigator struct {
	router  Router
	dirty   DirtyReader
	log     *pterm.Logger
	metrics *metrics.Metrics
	origin  *url.URL

	mu      sync.Mutex
	prompt  Prompter
	pending *Intent
}

func New(router Router, dirty DirtyReader, opts ...Option) *Navigator {
	n := &Navigator{router: router, dirty: dirty, log: logging.Nop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetPrompter sets what is opened when a navigation is deferred.
func (n *Navigator) SetPrompter(p Prompter) {
	n.mu.Lock()
	n.prompt = p
	n.mu.Unlock()
}

// Current returns the router's current path.
func (n *Navigator) Current() string { return n.router.Current() }

func (n *Navigator) Push(path string) {
	n.attempt(Intent{Kind: KindPush, Path: path})
}

func (n *Navigator) Replace(path string) {
	n.attempt(Intent{Kind: KindReplace, Path: path})
}

// Back steps back. A step the router reports it cannot take is a no-op and
// never prompts.
func (n *Navigator) Back() {
	if st, ok := n.router.(Stepper); ok && !st.CanGoBack() {
		return
	}
	n.attempt(Intent{Kind: KindBack})
}

func (n *Navigator) Forward() {
	if st, ok := n.router.(Stepper); ok && !st.CanGoForward() {
		return
	}
	n.attempt(Intent{Kind: KindForward})
}

// Guard runs action now when there are no unsaved changes and reports true.
// Otherwise action becomes the pending intent and Guard reports false.
func (n *Navigator) Guard(action func()) bool {
	return n.Run("", action)
}

// Run is Guard with a label for prompts and logs.
func (n *Navigator) Run(label string, action func()) bool {
	return n.attempt(Intent{Kind: KindAction, Label: label, Action: action})
}

// BeforeUnload reports whether leaving now must be confirmed. It cannot save.
func (n *Navigator) BeforeUnload() bool {
	return n.dirty.IsDirty()
}

// Pending returns the deferred intent, if any.
func (n *Navigator) Pending() (Intent, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		return Intent{}, false
	}
	return *n.pending, true
}

// Resume replays the pending intent and clears it. It reports false when
// nothing was pending. The replay bypasses the dirty check.
func (n *Navigator) Resume() bool {
	n.mu.Lock()
	in := n.pending
	n.pending = nil
	n.mu.Unlock()
	if in == nil {
		return false
	}
	n.log.Debug("replaying deferred navigation", n.log.Args("intent", in.ID, "kind", string(in.Kind), "path", in.Path))
	n.metrics.Replay(string(in.Kind))
	n.execute(*in)
	return true
}

// Drop discards the pending intent without running it.
func (n *Navigator) Drop() {
	n.mu.Lock()
	in := n.pending
	n.pending = nil
	n.mu.Unlock()
	if in != nil {
		n.log.Debug("deferred navigation cancelled", n.log.Args("intent", in.ID, "kind", string(in.Kind)))
	}
}

func (n *Navigator) attempt(in Intent) bool {
	if !n.dirty.IsDirty() {
		n.execute(in)
		return true
	}

	in.ID = uuid.NewString()
	n.mu.Lock()
	prev := n.pending
	n.pending = &in
	prompt := n.prompt
	n.mu.Unlock()

	if prev != nil {
		n.metrics.Supersede()
		n.log.Debug("pending navigation replaced", n.log.Args("dropped", prev.ID, "dropped_kind", string(prev.Kind), "by", in.ID))
	}
	n.metrics.Intercept(string(in.Kind))
	n.log.Debug("navigation deferred: unsaved changes", n.log.Args("intent", in.ID, "kind", string(in.Kind), "path", in.Path))
	if prompt != nil {
		prompt.Open(in)
	}
	return false
}

func (n *Navigator) execute(in Intent) {
	switch in.Kind {
	case KindPush:
		n.router.Push(in.Path)
	case KindReplace:
		n.router.Replace(in.Path)
	case KindBack:
		n.router.Back()
	case KindForward:
		n.router.Forward()
	case KindAction:
		if in.Action != nil {
			in.Action()
		}
	}
}
