// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowClean(t *testing.T) {
	tests := []struct {
		name string
		link Link
		want Outcome
		path string
	}{
		{"relative path", Link{Href: "/overview"}, Navigated, "/overview"},
		{"same origin absolute", Link{Href: "https://app.brandlens.io/settings?tab=team"}, Navigated, "/settings?tab=team"},
		{"relative segment", Link{Href: "2"}, Navigated, "/brands/2"},
		{"external", Link{Href: "https://example.com/pricing"}, PassThrough, "/brands/1"},
		{"protocol relative", Link{Href: "//example.com/x"}, PassThrough, "/brands/1"},
		{"mailto", Link{Href: "mailto:help@brandlens.io"}, PassThrough, "/brands/1"},
		{"new tab", Link{Href: "/overview", NewContext: true}, PassThrough, "/brands/1"},
		{"hash only", Link{Href: "#notes"}, PassThrough, "/brands/1"},
		{"same page", Link{Href: "/brands/1?x=1"}, PassThrough, "/brands/1"},
		{"empty", Link{Href: "  "}, PassThrough, "/brands/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, h, _, p, _ := newTestNavigator(t, "/brands/1")
			assert.Equal(t, tt.want, n.Follow(tt.link))
			assert.Equal(t, tt.path, h.Current())
			assert.Empty(t, p.opened)
		})
	}
}

func TestFollowWhileDirty(t *testing.T) {
	n, h, d, p, _ := newTestNavigator(t, "/brands/1")
	d.SetDirty(true)

	assert.Equal(t, PassThrough, n.Follow(Link{Href: "https://example.com"}))
	assert.Equal(t, PassThrough, n.Follow(Link{Href: "#top"}))
	assert.Equal(t, PassThrough, n.Follow(Link{Href: "/overview", NewContext: true}))
	assert.Empty(t, p.opened, "no confirmation for links that are not intercepted")

	assert.Equal(t, Blocked, n.Follow(Link{Href: "/overview"}))
	assert.Len(t, p.opened, 1)
	assert.Equal(t, "/brands/1", h.Current())

	d.Discard()
	n.Resume()
	assert.Equal(t, "/overview", h.Current())
}
