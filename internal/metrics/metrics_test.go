package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ProfileFetch("ok")
	m.Redirect("/login")
	m.Intercept("push")
	m.Replay("push")
	m.Supersede()
}

func TestCollect(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ProfileFetch("ok")
	m.Redirect("/login")
	m.Redirect("/login")
	m.Intercept("back")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Redirects.WithLabelValues("/login")))

	samples, err := Collect(reg)
	require.NoError(t, err)
	require.Len(t, samples, 4)
	assert.Equal(t, Sample{Name: "brandlens_intents_superseded_total", Value: 0}, samples[0])
	assert.Equal(t, "brandlens_navigations_intercepted_total", samples[1].Name)
	assert.Equal(t, "kind=back", samples[1].Labels)
	assert.Equal(t, "brandlens_profile_fetches_total", samples[2].Name)
	assert.Equal(t, Sample{Name: "brandlens_redirects_total", Labels: "target=/login", Value: 2}, samples[3])
}
