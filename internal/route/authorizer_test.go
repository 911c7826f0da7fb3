// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brandlens/cli/internal/config"
	"brandlens/cli/internal/session"
)

var (
	signedOut  = session.Snapshot{}
	tokenOnly  = session.Snapshot{Token: "t"}
	loading    = session.Snapshot{Token: "t", IsLoading: true, Gate: session.GateInFlight}
	noBrand    = session.Snapshot{Token: "t", Profile: &session.Profile{ID: "u", Email: "a@b.co"}}
	withBrand  = session.Snapshot{Token: "t", Profile: &session.Profile{ID: "u", Email: "a@b.co", HasBrand: true}}
	allStates  = []session.Snapshot{signedOut, tokenOnly, noBrand, withBrand}
	publicSet  = []string{"/public", "/auth/check-inbox", "/auth/callback", "/auth/google", "/auth/google/callback"}
	protected  = []string{"/overview", "/brands/42", "/settings/billing", "/onboarding/brand"}
	entryPages = []string{"/", "/login", "/signup"}
)

func TestDecideTable(t *testing.T) {
	r := DefaultRoutes()
	tests := []struct {
		name string
		snap session.Snapshot
		path string
		want Decision
	}{
		{"loading waits", loading, "/overview", Decision{Kind: Wait, Reason: "loading"}},
		{"signed in with brand on login", withBrand, "/login", redirect("/overview", "signed_in")},
		{"signed in with brand on home", withBrand, "/", redirect("/overview", "signed_in")},
		{"signed in without brand on login", noBrand, "/login", allow("public")},
		{"public for anyone", signedOut, "/auth/callback", allow("public")},
		{"signed out on protected", signedOut, "/overview", redirect("/login", "unauthenticated")},
		{"token without profile is signed out", tokenOnly, "/overview", redirect("/login", "unauthenticated")},
		{"signed out on loginless", signedOut, "/analysis-results", redirect("/login", "unauthenticated")},
		{"loginless without brand", noBrand, "/analysis-results/7", allow("loginless")},
		{"no brand outside onboarding", noBrand, "/overview", redirect("/onboarding/brand", "onboarding_required")},
		{"no brand inside onboarding", noBrand, "/onboarding/products", allow("authorized")},
		{"brand inside onboarding", withBrand, "/onboarding/brand", redirect("/overview", "onboarding_complete")},
		{"brand on protected", withBrand, "/brands/42", allow("authorized")},
		{"query and fragment ignored", signedOut, "/overview?tab=1#top", redirect("/login", "unauthenticated")},
		{"onboarding prefix is segment bound", noBrand, "/onboardingx", redirect("/onboarding/brand", "onboarding_required")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(r, tt.snap, tt.path))
		})
	}
}

func TestPublicPathsNeverRedirect(t *testing.T) {
	r := DefaultRoutes()
	for _, snap := range allStates {
		for _, p := range publicSet {
			d := Decide(r, snap, p)
			assert.Equal(t, Allow, d.Kind, "path %s", p)
		}
	}
}

func TestSignedOutAlwaysGoesToLogin(t *testing.T) {
	r := DefaultRoutes()
	for _, snap := range []session.Snapshot{signedOut, tokenOnly} {
		for _, p := range append(protected, "/analysis-results") {
			d := Decide(r, snap, p)
			assert.Equal(t, Redirect, d.Kind, "path %s", p)
			assert.Equal(t, "/login", d.Target, "path %s", p)
		}
	}
}

func TestBrandOwnersLeaveEntryPages(t *testing.T) {
	r := DefaultRoutes()
	for _, p := range entryPages {
		d := Decide(r, withBrand, p)
		assert.Equal(t, redirect("/overview", "signed_in"), d, "path %s", p)
	}
}

func TestFromConfig(t *testing.T) {
	r := FromConfig(config.RouteConfig{Landing: "/home/", Login: "/sign-in", OnboardingEntry: "onboarding/start"})
	assert.Equal(t, "/home", r.Landing)
	assert.Equal(t, "/onboarding/start", r.OnboardingEntry)
	assert.Equal(t, Public, r.Categorize("/sign-in"))

	assert.Equal(t, redirect("/sign-in", "unauthenticated"), Decide(r, signedOut, "/overview"))
	assert.Equal(t, redirect("/home", "signed_in"), Decide(r, withBrand, "/sign-in"))
}

func TestRedirectToSelfIsAllowed(t *testing.T) {
	r := DefaultRoutes()
	r.OnboardingEntry = "/welcome"
	assert.Equal(t, allow("onboarding_required"), Decide(r, noBrand, "/welcome"))
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"":                "/",
		"/":               "/",
		"overview":        "/overview",
		"/overview/":      "/overview",
		"/a//b/../c?x=1":  "/a/c",
		"#section":        "/",
		"/brands/1#notes": "/brands/1",
	}
	for in, want := range tests {
		assert.Equal(t, want, Clean(in), "input %q", in)
	}
}

func TestPostLogin(t *testing.T) {
	r := DefaultRoutes()
	assert.Equal(t, "/onboarding/brand", PostLogin(r, true, withBrand.Profile))
	assert.Equal(t, "/onboarding/brand", PostLogin(r, false, noBrand.Profile))
	assert.Equal(t, "/onboarding/brand", PostLogin(r, false, nil))
	assert.Equal(t, "/overview", PostLogin(r, false, withBrand.Profile))
}
