// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the CLI's structured logger and the helpers that keep
// credentials out of its output. Session tokens travel through nearly every layer
// of the navigation stack, so anything that might echo one is masked first.
package logging

import "regexp"

var (
	reToken  = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSON   = regexp.MustCompile(`(?i)("(?:token|access_token)"\s*:\s*")([^"]+)(")`)
	rePasswd = regexp.MustCompile(`(?i)(password=)([^\s&;]+)`)
)

// Mask replaces credential values in s with "***".
func Mask(s string) string {
	out := s
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSON.ReplaceAllString(out, "$1***$3")
	out = rePasswd.ReplaceAllString(out, "$1***")
	return out
}

// MaskToken shortens a raw token to a recognisable prefix for debug output.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "***"
}
