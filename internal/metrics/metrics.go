// Package metrics exposes blend counters and timings to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scatterblend/pkg/core"
	"scatterblend/pkg/weightmap"
)

// Metrics owns a private registry with the blend collectors registered on it.
type Metrics struct {
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New returns metrics registered on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry:   prometheus.NewRegistry(),
		prometheus: NewPrometheusMetrics(),
	}
	m.registry.MustRegister(m.prometheus.collectors()...)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheHit records a classification cache hit.
func (m *Metrics) CacheHit() { m.prometheus.CacheRequests.WithLabelValues("hit").Inc() }

// CacheMiss records a classification cache miss.
func (m *Metrics) CacheMiss() { m.prometheus.CacheRequests.WithLabelValues("miss").Inc() }

func (m *Metrics) observe(name string, start time.Time, out *weightmap.Map) {
	m.prometheus.Duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if out == nil {
		return
	}
	labels := "mixed"
	if out.Len() == 1 {
		labels = "single"
	}
	m.prometheus.Regions.WithLabelValues(name, labels).Inc()
}

// Instrumented wraps a Blender and records every call.
type Instrumented struct {
	core.Blender
	metrics         *Metrics
	classifications prometheus.Counter
}

// Instrument wraps b so its blends are counted and timed.
func (m *Metrics) Instrument(b core.Blender) *Instrumented {
	return &Instrumented{
		Blender:         b,
		metrics:         m,
		classifications: m.prometheus.Classifications.WithLabelValues(b.Name()),
	}
}

// Unwrap returns the wrapped blender.
func (i *Instrumented) Unwrap() core.Blender { return i.Blender }

// Blend counts classifier calls and records the blend duration.
func (i *Instrumented) Blend(seed int64, originX, originZ int32, classify core.Classifier) *weightmap.Map {
	start := time.Now()
	out := i.Blender.Blend(seed, originX, originZ, func(x, z float64) core.Label {
		i.classifications.Inc()
		return classify(x, z)
	})
	i.metrics.observe(i.Name(), start, out)
	return out
}

// BlendE is Blend for a fallible classifier.
func (i *Instrumented) BlendE(seed int64, originX, originZ int32, classify core.ClassifierE) (*weightmap.Map, error) {
	start := time.Now()
	out, err := i.Blender.BlendE(seed, originX, originZ, func(x, z float64) (core.Label, error) {
		i.classifications.Inc()
		return classify(x, z)
	})
	i.metrics.observe(i.Name(), start, out)
	return out, err
}

// Parameters forwards the wrapped blender's configuration when available.
func (i *Instrumented) Parameters() core.ParameterSnapshot {
	if p, ok := i.Blender.(core.ParameterProvider); ok {
		return p.Parameters()
	}
	return core.ParameterSnapshot{}
}
