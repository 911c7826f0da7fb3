// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	apperrors "brandlens/cli/internal/errors"

	"github.com/pterm/pterm"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatSessionError turns a session or save failure into a short, styled
// explanation with the next step the user should take.
func FormatSessionError(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	switch apperrors.KindOf(err) {
	case apperrors.Unauthorized:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Session expired"))
		b.WriteString("\n\nYour sign-in is no longer valid and local credentials were cleared.\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Run 'brandlens login' to sign in again"))
	case apperrors.NoToken:
		b.WriteString(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("Not signed in"))
		b.WriteString("\n\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Run 'brandlens login' to get started"))
	case apperrors.MalformedProfile:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Unreadable account data"))
		b.WriteString("\n\nThe server answered, but not with an account profile. You are treated as signed out.\n")
	case apperrors.SaveFailed:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Save failed"))
		b.WriteString("\n\nYour changes are still pending. Try saving again, discard them, or cancel.\n")
	default:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Connection problem"))
		b.WriteString("\n\n")
		b.WriteString(describeNetworkError(err))
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Your session is unchanged; run 'reload' to retry"))
	}
	b.WriteString("\n")

	if details := strings.TrimSpace(err.Error()); details != "" {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(details)))
	}
	return b.String()
}

// PresentSessionError prints FormatSessionError surrounded by blank lines.
func PresentSessionError(err error) {
	pterm.Println()
	pterm.Println(FormatSessionError(err))
	pterm.Println()
}

func describeNetworkError(err error) string {
	switch {
	case isTimeout(err):
		return "The server took too long to respond.\n"
	case isDNS(err):
		return "The server address could not be resolved. Check your connection and DNS settings.\n"
	case isRefused(err):
		return "The server is not accepting connections right now.\n"
	case isServerError(err.Error()):
		return "The server reported an internal error. This is not a problem with your setup.\n"
	default:
		return "The session endpoint could not be reached.\n"
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNS(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isServerError(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range []string{" 500", " 502", " 503", " 504", "internal server error", "bad gateway", "service unavailable"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
