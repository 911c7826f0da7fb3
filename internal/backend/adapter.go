// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the HTTP client for the account endpoints the navigation
// layer depends on: the session/profile endpoint, logout and magic-link verification.
// It knows nothing about profiles beyond the raw payload; interpreting it is the
// session package's job.
package backend

import (
	"context"
	"encoding/json"
)

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Session fetches the session payload for accessToken. A rejected credential
	// is reported as an errors.Unauthorized error; anything else that prevents a
	// usable answer is errors.Transient.
	Session(ctx context.Context, accessToken string) (SessionPayload, error)
	// Logout invalidates accessToken on the server.
	Logout(ctx context.Context, accessToken string) error
	// VerifyMagicLink exchanges the code from a sign-in email for a session token.
	VerifyMagicLink(ctx context.Context, code string) (MagicLinkResult, error)
	// GetVersion reports the server version string.
	GetVersion(ctx context.Context) (string, error)
}

// SessionPayload is the body of GET <session-endpoint>.
// Profile is left raw so that a malformed profile can be told apart from a
// malformed envelope.
type SessionPayload struct {
	OK      bool            `json:"ok"`
	Profile json.RawMessage `json:"profile,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// MagicLinkResult is the body of a successful magic-link verification.
type MagicLinkResult struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
	IsNew bool   `json:"isNew"`
}

// Endpoints holds the URL paths of the account API relative to the base URL.
type Endpoints struct {
	Session          string
	Logout           string
	MagicLinkRequest string
	MagicLinkVerify  string
	Version          string
}

// DefaultEndpoints returns the paths served by the web application.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Session:          "/api/auth/session",
		Logout:           "/api/auth/logout",
		MagicLinkRequest: "/api/auth/magic-link",
		MagicLinkVerify:  "/api/auth/magic-link/verify",
		Version:          "/api/version",
	}
}
