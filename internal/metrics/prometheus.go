package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "scatterblend"

// Prometheus groups the blend collectors.
type Prometheus struct {
	Classifications *prometheus.CounterVec
	CacheRequests   *prometheus.CounterVec
	Regions         *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
}

// NewPrometheusMetrics builds unregistered collectors under the scatterblend namespace.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Classifier invocations made by blenders.",
			}, []string{"blender"}),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classification_cache_requests_total",
				Help:      "Classification cache lookups by result.",
			}, []string{"result"}),
		Regions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "regions_total",
				Help:      "Blended regions by number of labels present.",
			}, []string{"blender", "labels"}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "blend_duration_seconds",
				Help:      "Wall time of a single region blend.",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			}, []string{"blender"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Classifications, p.CacheRequests, p.Regions, p.Duration}
}
