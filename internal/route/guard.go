// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package route

import (
	"sync"

	"github.com/pterm/pterm"

	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/metrics"
	"brandlens/cli/internal/session"
)

// Suppression is the redirect gate for one path and target.
//
//	Open ──redirect──▶ Redirected ──path, target or decision change──▶ Open
type Suppression int

const (
	Open Suppression = iota
	Redirected
)

func (s Suppression) String() string {
	if s == Redirected {
		return "redirected"
	}
	return "open"
}

// SessionReader supplies the snapshot each evaluation works from.
type SessionReader interface {
	Snapshot() session.Snapshot
}

// Redirector performs a redirect. The navigation façade's Replace satisfies it.
type Redirector interface {
	Replace(path string)
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

func WithLogger(l *pterm.Logger) GuardOption {
	return func(g *Guard) { g.log = logging.OrNop(l) }
}

func WithMetrics(m *metrics.Metrics) GuardOption {
	return func(g *Guard) { g.metrics = m }
}

// Guard re-evaluates access on every path or session change and issues at most
// one redirect per path.
type Guard struct {
	routes   Routes
	session  SessionReader
	redirect Redirector
	log      *pterm.Logger
	metrics  *metrics.Metrics

	mu         sync.Mutex
	gate       Suppression
	lastPath   string
	lastTarget string
	seen       bool
}

func NewGuard(routes Routes, sess SessionReader, r Redirector, opts ...GuardOption) *Guard {
	g := &Guard{routes: routes, session: sess, redirect: r, log: logging.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Routes returns the route table the guard decides with.
func (g *Guard) Routes() Routes { return g.routes }

// Suppression reports the redirect gate for the last evaluated path.
func (g *Guard) Suppression() Suppression {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gate
}

// Evaluate decides for path and issues the redirect, if any. A redirect already
// issued from the same path to the same target is not repeated. The gate
// reopens when the path changes, when the decision stops being a redirect, or
// when it redirects somewhere else. The redirect runs without the guard's lock
// held, so the redirector may synchronously trigger the next evaluation.
func (g *Guard) Evaluate(path string) Decision {
	p := Clean(path)

	g.mu.Lock()
	if !g.seen || p != g.lastPath {
		g.reopen()
		g.lastPath = p
		g.seen = true
	}
	d := Decide(g.routes, g.session.Snapshot(), p)
	if d.Kind != Redirect {
		g.reopen()
		g.mu.Unlock()
		return d
	}
	if g.gate == Redirected && g.lastTarget == d.Target {
		g.mu.Unlock()
		g.log.Trace("redirect suppressed", g.log.Args("path", p, "target", d.Target))
		return d
	}
	g.gate = Redirected
	g.lastTarget = d.Target
	g.mu.Unlock()

	g.log.Debug("redirecting", g.log.Args("from", p, "to", d.Target, "reason", d.Reason))
	g.metrics.Redirect(d.Target)
	g.redirect.Replace(d.Target)
	return d
}

func (g *Guard) reopen() {
	g.gate = Open
	g.lastTarget = ""
}
