// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package route decides where a viewer may go.
//
// Decide is a pure function of a session snapshot and a path. Guard wraps it
// with redirect suppression and issues the redirects.
package route

import "brandlens/cli/internal/session"

// Kind is the outcome of an authorization decision.
type Kind int

const (
	// Wait means the session is loading and no decision is made.
	Wait Kind = iota
	Allow
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is what the authorizer concluded for one path.
type Decision struct {
	Kind   Kind
	Target string
	Reason string
}

func allow(reason string) Decision { return Decision{Kind: Allow, Reason: reason} }

func redirect(target, reason string) Decision {
	return Decision{Kind: Redirect, Target: target, Reason: reason}
}

// Decide applies the access rules in priority order; the first match wins.
// A snapshot without a profile counts as signed out.
func Decide(routes Routes, snap session.Snapshot, rawPath string) Decision {
	if snap.IsLoading {
		return Decision{Kind: Wait, Reason: "loading"}
	}

	p := Clean(rawPath)
	cat := routes.Categorize(p)
	authed := snap.Authenticated()
	hasBrand := authed && snap.Profile.HasBrand

	d := func() Decision {
		switch {
		case hasBrand && routes.isEntry(p):
			return redirect(routes.Landing, "signed_in")
		case cat == Public:
			return allow("public")
		case !authed:
			return redirect(routes.Login, "unauthenticated")
		case cat == Loginless:
			return allow("loginless")
		case !hasBrand && cat != Onboarding:
			return redirect(routes.OnboardingEntry, "onboarding_required")
		case hasBrand && cat == Onboarding:
			return redirect(routes.Landing, "onboarding_complete")
		default:
			return allow("authorized")
		}
	}()

	if d.Kind == Redirect && Clean(d.Target) == p {
		return allow(d.Reason)
	}
	return d
}

// PostLogin returns where a freshly signed-in viewer lands: onboarding for new
// accounts and accounts without a brand, the landing page otherwise.
func PostLogin(routes Routes, isNew bool, p *session.Profile) string {
	if isNew || p == nil || !p.HasBrand {
		return routes.OnboardingEntry
	}
	return routes.Landing
}
