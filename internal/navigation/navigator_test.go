// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package navigation

import (
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandlens/cli/internal/dirty"
	"brandlens/cli/internal/metrics"
)

type promptRecorder struct{ opened []Intent }

func (p *promptRecorder) Open(in Intent) { p.opened = append(p.opened, in) }

func newTestNavigator(t *testing.T, start string) (*Navigator, *History, *dirty.State, *promptRecorder, *metrics.Metrics) {
	t.Helper()
	h := NewHistory(start)
	d := dirty.New(nil)
	m := metrics.New(prometheus.NewRegistry())
	origin, err := url.Parse("https://app.brandlens.io")
	require.NoError(t, err)
	n := New(h, d, WithMetrics(m), WithOrigin(origin))
	p := &promptRecorder{}
	n.SetPrompter(p)
	return n, h, d, p, m
}

func TestCleanNavigationPassesThrough(t *testing.T) {
	n, h, _, p, _ := newTestNavigator(t, "/overview")

	n.Push("/brands")
	n.Push("/brands/1")
	assert.Equal(t, "/brands/1", h.Current())
	n.Back()
	assert.Equal(t, "/brands", h.Current())
	n.Forward()
	assert.Equal(t, "/brands/1", h.Current())
	n.Replace("/brands/2")
	entries, idx := h.Entries()
	assert.Equal(t, []string{"/overview", "/brands", "/brands/2"}, entries)
	assert.Equal(t, 2, idx)

	ran := false
	assert.True(t, n.Guard(func() { ran = true }))
	assert.True(t, ran)
	assert.Empty(t, p.opened)
	_, ok := n.Pending()
	assert.False(t, ok)
}

func TestDirtyNavigationIsDeferred(t *testing.T) {
	n, h, d, p, m := newTestNavigator(t, "/brands/1")
	d.SetDirty(true)

	n.Push("/overview")
	assert.Equal(t, "/brands/1", h.Current(), "navigation blocked")
	require.Len(t, p.opened, 1)
	assert.Equal(t, KindPush, p.opened[0].Kind)
	assert.NotEmpty(t, p.opened[0].ID)

	pending, ok := n.Pending()
	require.True(t, ok)
	assert.Equal(t, "/overview", pending.Path)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intercepted.WithLabelValues("push")))

	d.Discard()
	assert.True(t, n.Resume())
	assert.Equal(t, "/overview", h.Current())
	assert.False(t, n.Resume(), "replayed at most once")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replayed.WithLabelValues("push")))
}

func TestImpossibleStepDoesNotPrompt(t *testing.T) {
	n, h, d, p, _ := newTestNavigator(t, "/brands/1")
	d.SetDirty(true)

	n.Back()
	n.Forward()
	assert.Empty(t, p.opened)
	_, ok := n.Pending()
	assert.False(t, ok)

	d.Discard()
	n.Push("/overview")
	d.SetDirty(true)
	n.Back()
	require.Len(t, p.opened, 1)
	assert.Equal(t, KindBack, p.opened[0].Kind)
	assert.Equal(t, "/overview", h.Current())
}

func TestLastIntentWins(t *testing.T) {
	n, h, d, p, m := newTestNavigator(t, "/brands/1")
	d.SetDirty(true)

	n.Push("/overview")
	n.Replace("/settings")
	assert.Len(t, p.opened, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Superseded))

	d.Discard()
	require.True(t, n.Resume())
	entries, _ := h.Entries()
	assert.Equal(t, []string{"/settings"}, entries, "only the second intent ran")
}

func TestDropDiscardsIntent(t *testing.T) {
	n, h, d, _, _ := newTestNavigator(t, "/brands/1")
	d.SetDirty(true)
	n.Push("/overview")
	n.Drop()
	_, ok := n.Pending()
	assert.False(t, ok)
	assert.False(t, n.Resume())
	assert.Equal(t, "/brands/1", h.Current())
}

func TestGuardedActionIsDeferred(t *testing.T) {
	n, _, d, p, _ := newTestNavigator(t, "/brands/1")
	d.SetDirty(true)

	runs := 0
	assert.False(t, n.Run("delete brand", func() { runs++ }))
	assert.Zero(t, runs)
	require.Len(t, p.opened, 1)
	assert.Equal(t, "run delete brand", p.opened[0].Describe())

	require.True(t, n.Resume())
	assert.Equal(t, 1, runs)
}

func TestBeforeUnload(t *testing.T) {
	n, _, d, _, _ := newTestNavigator(t, "/")
	assert.False(t, n.BeforeUnload())
	d.SetDirty(true)
	assert.True(t, n.BeforeUnload())
}

func TestHistoryBounds(t *testing.T) {
	h := NewHistory("")
	var seen []string
	cancel := h.OnChange(func(p string) { seen = append(seen, p) })

	h.Back()
	h.Forward()
	assert.Empty(t, seen, "no move at the edges")
	assert.False(t, h.CanGoBack())

	h.Push("/a")
	h.Push("/b")
	h.Back()
	h.Push("/c")
	assert.False(t, h.CanGoForward(), "push truncates forward entries")
	assert.Equal(t, []string{"/a", "/b", "/a", "/c"}, seen)

	cancel()
	h.Push("/d")
	assert.Len(t, seen, 4)
}
