// Package metrics counts what the navigation layer does: profile fetches, forced
// redirects, intercepted navigations and replayed intents. The counters live on a
// caller-owned registry so tests can assert on them and the browse shell can print
// them. A nil *Metrics is valid and records nothing.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "brandlens"

// Metrics holds the navigation layer's Prometheus counters.
type Metrics struct {
	ProfileFetches *prometheus.CounterVec
	Redirects      *prometheus.CounterVec
	Intercepted    *prometheus.CounterVec
	Replayed       *prometheus.CounterVec
	Superseded     prometheus.Counter
}

// New registers the counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProfileFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_fetches_total",
			Help:      "Session endpoint requests issued by the profile loader, by outcome.",
		}, []string{"outcome"}),
		Redirects: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Redirects issued by the navigation guard, by target path.",
		}, []string{"target"}),
		Intercepted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_intercepted_total",
			Help:      "Navigations deferred because of unsaved changes, by kind.",
		}, []string{"kind"}),
		Replayed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_replayed_total",
			Help:      "Deferred navigations replayed after confirmation, by kind.",
		}, []string{"kind"}),
		Superseded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_superseded_total",
			Help:      "Pending navigations discarded because a newer one replaced them.",
		}),
	}
}

func (m *Metrics) ProfileFetch(outcome string) {
	if m == nil {
		return
	}
	m.ProfileFetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Redirect(target string) {
	if m == nil {
		return
	}
	m.Redirects.WithLabelValues(target).Inc()
}

func (m *Metrics) Intercept(kind string) {
	if m == nil {
		return
	}
	m.Intercepted.WithLabelValues(kind).Inc()
}

func (m *Metrics) Replay(kind string) {
	if m == nil {
		return
	}
	m.Replayed.WithLabelValues(kind).Inc()
}

func (m *Metrics) Supersede() {
	if m == nil {
		return
	}
	m.Superseded.Inc()
}

// Sample is one counter value flattened for display.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Collect gathers every brandlens counter from g, sorted by name and labels.
func Collect(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") || mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			out = append(out, Sample{
				Name:   mf.GetName(),
				Labels: strings.Join(labels, ","),
				Value:  m.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
