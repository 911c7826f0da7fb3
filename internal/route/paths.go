// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package route

import (
	"path"
	"slices"
	"strings"

	"brandlens/cli/internal/config"
)

// Category is the access class of a path.
type Category int

const (
	// Public paths are reachable by anyone.
	Public Category = iota
	// Onboarding paths make up the first-run setup flow.
	Onboarding
	// Loginless paths need a session but not a finished onboarding.
	Loginless
	// Protected is everything else.
	Protected
)

func (c Category) String() string {
	switch c {
	case Public:
		return "public"
	case Onboarding:
		return "onboarding"
	case Loginless:
		return "loginless"
	default:
		return "protected"
	}
}

// Routes is the route table the authorizer works from.
type Routes struct {
	// Landing is where signed-in viewers with a brand are sent.
	Landing string
	// Login is where unauthenticated viewers are sent.
	Login string
	// OnboardingEntry is where viewers without a brand are sent.
	OnboardingEntry string

	// Signup and Home are bounced to Landing once the viewer has a brand.
	Signup string
	Home   string

	PublicPaths      []string
	PublicPrefixes   []string
	OnboardingPrefix string
	LoginlessPaths   []string
}

// DefaultRoutes returns the web application's route table.
func DefaultRoutes() Routes {
	return Routes{
		Landing:          "/overview",
		Login:            "/login",
		Signup:           "/signup",
		Home:             "/",
		OnboardingEntry:  "/onboarding/brand",
		PublicPaths:      []string{"/", "/login", "/signup", "/public"},
		PublicPrefixes:   []string{"/auth/"},
		OnboardingPrefix: "/onboarding",
		LoginlessPaths:   []string{"/analysis-results"},
	}
}

// FromConfig applies the configured destinations on top of DefaultRoutes.
// A custom login path is public too.
func FromConfig(rc config.RouteConfig) Routes {
	r := DefaultRoutes()
	if rc.Landing != "" {
		r.Landing = Clean(rc.Landing)
	}
	if rc.Login != "" {
		r.Login = Clean(rc.Login)
		if !slices.Contains(r.PublicPaths, r.Login) {
			r.PublicPaths = append(r.PublicPaths, r.Login)
		}
	}
	if rc.OnboardingEntry != "" {
		r.OnboardingEntry = Clean(rc.OnboardingEntry)
	}
	return r
}

// Categorize classifies p. It expects a cleaned path.
func (r Routes) Categorize(p string) Category {
	if slices.Contains(r.PublicPaths, p) {
		return Public
	}
	for _, prefix := range r.PublicPrefixes {
		if strings.HasPrefix(p, prefix) {
			return Public
		}
	}
	if under(p, r.OnboardingPrefix) {
		return Onboarding
	}
	for _, l := range r.LoginlessPaths {
		if under(p, l) {
			return Loginless
		}
	}
	return Protected
}

// isEntry reports whether p is one of the pages a signed-in viewer with a
// brand has no business on.
func (r Routes) isEntry(p string) bool {
	return p == r.Login || p == r.Signup || p == r.Home
}

func under(p, prefix string) bool {
	if prefix == "" {
		return false
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// Clean strips query and fragment and normalizes p to an absolute path
// without a trailing slash.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}
