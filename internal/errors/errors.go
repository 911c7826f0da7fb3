// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Callers branch on the Kind rather than on message text, so the session store can
// tell an expired credential apart from a flaky network and react accordingly.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Unauthorized means the session endpoint rejected the credential.
	Unauthorized Kind = "unauthorized"
	// Transient covers network and server failures unrelated to the credential.
	Transient Kind = "transient"
	// MalformedProfile means the session payload could not be read as a profile.
	MalformedProfile Kind = "malformed_profile"
	// NoToken means an operation needed a credential and none is stored.
	NoToken Kind = "no_token"
	// SaveFailed wraps an error returned by an editor's save callback.
	SaveFailed Kind = "save_failed"
	// Busy means the operation is already running.
	Busy Kind = "busy"
	// Storage covers keychain and state file failures.
	Storage Kind = "storage"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *E
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
