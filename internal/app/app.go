// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package app wires the session, the navigation façade, the confirmation dialog
// and the route guard into one running client.
//
// The guard re-evaluates whenever the current path or the session changes,
// but only after Bootstrap has finished the initial profile load.
package app

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"

	"brandlens/cli/internal/backend"
	"brandlens/cli/internal/config"
	"brandlens/cli/internal/confirm"
	"brandlens/cli/internal/dirty"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/metrics"
	"brandlens/cli/internal/navigation"
	"brandlens/cli/internal/route"
	"brandlens/cli/internal/session"
)

// Deps are the collaborators App does not own.
type Deps struct {
	API     backend.API
	Persist session.Persister
	Log     *pterm.Logger
	// Start is the path the client opens at. Defaults to "/".
	Start string
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is a running client.
type App struct {
	Config   config.Config
	Log      *pterm.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Session *session.Store
	Dirty   *dirty.State
	History *navigation.History
	Nav     *navigation.Navigator
	Dialog  *confirm.Dialog
	Guard   *route.Guard

	api     backend.API
	ready   atomic.Bool
	cancels []func()
}

// New builds the client. Nothing is loaded until Bootstrap.
func New(cfg config.Config, deps Deps) (*App, error) {
	log := logging.OrNop(deps.Log)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	origin, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Metrics:  m,
		api:      deps.API,
	}
	a.Session = session.New(deps.API, deps.Persist, session.WithLogger(log), session.WithMetrics(m))
	a.Dirty = dirty.New(deps.Now)
	a.History = navigation.NewHistory(route.Clean(deps.Start))
	a.Nav = navigation.New(a.History, a.Dirty,
		navigation.WithLogger(log),
		navigation.WithMetrics(m),
		navigation.WithOrigin(origin),
	)
	a.Dialog = confirm.New(a.Nav, a.Dirty, log)
	a.Nav.SetPrompter(a.Dialog)
	a.Guard = route.NewGuard(route.FromConfig(cfg.Routes), a.Session, a.Nav,
		route.WithLogger(log),
		route.WithMetrics(m),
	)

	a.cancels = append(a.cancels,
		a.History.OnChange(func(string) { a.evaluate() }),
		a.Session.Subscribe(func(session.Snapshot) { a.evaluate() }),
	)
	return a, nil
}

func (a *App) evaluate() {
	if !a.ready.Load() {
		return
	}
	a.Guard.Evaluate(a.History.Current())
}

// Bootstrap restores the stored session, loads the profile when there is a
// token, and runs the first authorization decision. A profile load failure is
// returned but does not stop the client; the guard has already acted on it.
func (a *App) Bootstrap(ctx context.Context) (route.Decision, error) {
	if err := a.Session.Restore(); err != nil {
		return route.Decision{}, err
	}
	var loadErr error
	if a.Session.Snapshot().Token != "" {
		_, loadErr = a.Session.LoadProfile(ctx)
	}
	a.ready.Store(true)
	return a.Guard.Evaluate(a.History.Current()), loadErr
}

// Reload retries the profile load, e.g. after a transient failure.
func (a *App) Reload(ctx context.Context) (session.Profile, error) {
	return a.Session.LoadProfile(ctx)
}

// CompleteMagicLink exchanges a magic-link code for a session and moves to the
// post-login landing page. It returns where the viewer was sent.
func (a *App) CompleteMagicLink(ctx context.Context, code string) (session.Profile, string, error) {
	res, err := a.api.VerifyMagicLink(ctx, code)
	if err != nil {
		return session.Profile{}, "", err
	}
	a.Session.SetIsNew(res.IsNew)
	p, err := a.Session.LoginWithToken(ctx, res.Token)
	if err != nil {
		return session.Profile{}, "", err
	}
	target := route.PostLogin(a.Guard.Routes(), res.IsNew, &p)
	a.Nav.Replace(target)
	return p, target, nil
}

// Logout signs out. The guard then sends the viewer to login, through the
// unsaved-changes check like any other navigation.
func (a *App) Logout(ctx context.Context) error {
	return a.Session.Logout(ctx)
}

// Stats returns the current counter values.
func (a *App) Stats() ([]metrics.Sample, error) {
	return metrics.Collect(a.Registry)
}

// Close detaches the guard from history and session changes.
func (a *App) Close() {
	for _, c := range a.cancels {
		c()
	}
	a.cancels = nil
	a.ready.Store(false)
}
