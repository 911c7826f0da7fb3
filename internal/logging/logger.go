// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// VerboseEnv switches every command to debug logging when set to "1".
const VerboseEnv = "BRANDLENS_VERBOSE"

// Verbose reports whether verbose mode is enabled for this process.
func Verbose() bool {
	return os.Getenv(VerboseEnv) == "1"
}

// ParseLevel maps a config string onto a pterm log level. Unknown values fall back to info.
func ParseLevel(s string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}

// New builds a structured logger writing to w. Verbose mode overrides level.
func New(w io.Writer, level string) *pterm.Logger {
	l := pterm.DefaultLogger
	lvl := ParseLevel(level)
	if Verbose() {
		lvl = pterm.LogLevelDebug
	}
	return l.WithWriter(w).WithLevel(lvl)
}

// NewJSON is New with the JSON formatter, for piping the browse shell into other tools.
func NewJSON(w io.Writer, level string) *pterm.Logger {
	return New(w, level).WithFormatter(pterm.LogFormatterJSON)
}

// Nop returns a logger that discards everything. Components fall back to it when
// constructed without one.
func Nop() *pterm.Logger {
	l := pterm.DefaultLogger
	return l.WithWriter(io.Discard).WithLevel(pterm.LogLevelDisabled)
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *pterm.Logger) *pterm.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
