// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package navigation

import (
	"net/url"
	"strings"
)

// Link is an in-app anchor. Every internal link goes through Follow.
type Link struct {
	Href string
	// NewContext is set for links that open in a new tab or window.
	NewContext bool
}

// Outcome says what Follow did with a link.
type Outcome int

const (
	// PassThrough means the link is not the navigator's business: external,
	// new context, hash-only or same page. The caller handles it natively.
	PassThrough Outcome = iota
	Navigated
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Navigated:
		return "navigated"
	case Blocked:
		return "blocked"
	default:
		return "pass_through"
	}
}

// Follow activates l. Same-origin links to another page are pushed through the
// unsaved-changes check; everything else passes through untouched.
func (n *Navigator) Follow(l Link) Outcome {
	target, ok := n.resolve(l)
	if !ok {
		return PassThrough
	}
	if n.attempt(Intent{Kind: KindPush, Path: target}) {
		return Navigated
	}
	return Blocked
}

func (n *Navigator) resolve(l Link) (string, bool) {
	href := strings.TrimSpace(l.Href)
	if l.NewContext || href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	base := n.origin
	if base == nil {
		base = &url.URL{}
	}
	cur, err := url.Parse(n.router.Current())
	if err != nil {
		return "", false
	}
	cur = base.ResolveReference(cur)
	abs := cur.ResolveReference(u)

	if abs.Scheme != cur.Scheme || abs.Host != cur.Host {
		return "", false
	}
	if abs.Path == cur.Path {
		return "", false
	}

	target := abs.Path
	if abs.RawQuery != "" {
		target += "?" + abs.RawQuery
	}
	if abs.Fragment != "" {
		target += "#" + abs.Fragment
	}
	return target, true
}
