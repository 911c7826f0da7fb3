// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package confirm resolves a navigation that was deferred because of unsaved
// changes: save and continue, discard, or cancel.
package confirm

import (
	"context"
	"sync"

	"github.com/pterm/pterm"

	apperrors "brandlens/cli/internal/errors"
	"brandlens/cli/internal/logging"
	"brandlens/cli/internal/navigation"
)

// State is the dialog's lifecycle.
//
//	Closed ──Open──▶ Open ──save──▶ Saving ──ok──▶ Closed
//	                  ▲                │
//	                  └────failure─────┘
type State int

const (
	Closed State = iota
	Opened
	Saving
)

func (s State) String() string {
	switch s {
	case Opened:
		return "open"
	case Saving:
		return "saving"
	default:
		return "closed"
	}
}

// SaveFunc persists the editor's changes. It belongs to the editing page.
type SaveFunc func(ctx context.Context) error

// Pending is the deferred navigation the dialog resolves. *navigation.Navigator
// implements it.
type Pending interface {
	Resume() bool
	Drop()
}

// Dirty is the part of the unsaved-changes flag the dialog clears.
// *dirty.State implements it.
type Dirty interface {
	MarkSaved()
	Discard()
}

// Dialog is the confirmation controller. Open is called by the navigator; the
// three resolutions are called by whatever renders the choices.
type Dialog struct {
	pending Pending
	dirty   Dirty
	log     *pterm.Logger

	mu      sync.Mutex
	state   State
	intent  navigation.Intent
	saver   SaveFunc
	lastErr error
}

func New(pending Pending, dirty Dirty, log *pterm.Logger) *Dialog {
	return &Dialog{pending: pending, dirty: dirty, log: logging.OrNop(log)}
}

// SetSaver registers the current editor's save callback. nil unregisters it,
// after which saving succeeds without doing anything.
func (d *Dialog) SetSaver(fn SaveFunc) {
	d.mu.Lock()
	d.saver = fn
	d.mu.Unlock()
}

// Open shows the dialog for in. While a save is running the dialog stays in
// Saving and only the described intent changes.
func (d *Dialog) Open(in navigation.Intent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.intent = in
	if d.state != Saving {
		d.state = Opened
		d.lastErr = nil
	}
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Intent returns the intent the dialog was last opened for while it is showing.
func (d *Dialog) Intent() (navigation.Intent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.intent, d.state != Closed
}

// Err returns the last save failure shown in the dialog.
func (d *Dialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// SaveAndContinue runs the save callback. On success the changes are marked
// saved, the dialog closes and the pending intent is replayed. On failure the
// dialog stays open, nothing is cleared, and an errors.SaveFailed error is
// returned.
func (d *Dialog) SaveAndContinue(ctx context.Context) error {
	d.mu.Lock()
	switch d.state {
	case Closed:
		d.mu.Unlock()
		return nil
	case Saving:
		d.mu.Unlock()
		return apperrors.New(apperrors.Busy, "save already in progress")
	}
	d.state = Saving
	saver := d.saver
	d.mu.Unlock()

	var err error
	if saver != nil {
		err = saver(ctx)
	}
	if err != nil {
		failure := apperrors.Wrap(apperrors.SaveFailed, "save changes", err)
		d.mu.Lock()
		d.state = Opened
		d.lastErr = failure
		d.mu.Unlock()
		d.log.Warn("save before leaving failed", d.log.Args("error", err))
		return failure
	}

	d.dirty.MarkSaved()
	d.close()
	d.pending.Resume()
	return nil
}

// Discard drops the unsaved changes and replays the pending intent.
// It does nothing while a save is running.
func (d *Dialog) Discard() {
	if d.busy() {
		return
	}
	d.dirty.Discard()
	d.close()
	d.pending.Resume()
}

// Cancel closes the dialog and forgets the pending intent.
// It does nothing while a save is running.
func (d *Dialog) Cancel() {
	if d.busy() {
		return
	}
	d.close()
	d.pending.Drop()
}

func (d *Dialog) busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == Saving
}

func (d *Dialog) close() {
	d.mu.Lock()
	d.state = Closed
	d.lastErr = nil
	d.intent = navigation.Intent{}
	d.mu.Unlock()
}
