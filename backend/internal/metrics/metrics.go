// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private Prometheus registry and the collectors on it
type Registry struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SkillsGraphNodes      prometheus.Gauge
	SkillsGraphEdges      prometheus.Gauge
	SkillsCycleRejections prometheus.Counter
	JobsIngestedTotal     *prometheus.CounterVec
	LLMRequestsTotal      *prometheus.CounterVec
}

// NewRegistry creates a registry with every collector registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedinsight_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkedinsight_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.SkillsGraphNodes = factory.NewGauge(prometheus.GaugeOpts{
		Name: "linkedinsight_skills_graph_nodes",
		Help: "Number of skills in the graph",
	})

	r.SkillsGraphEdges = factory.NewGauge(prometheus.GaugeOpts{
		Name: "linkedinsight_skills_graph_edges",
		Help: "Number of prerequisite relationships in the graph",
	})

	r.SkillsCycleRejections = factory.NewCounter(prometheus.CounterOpts{
		Name: "linkedinsight_skills_cycle_rejections_total",
		Help: "Prerequisite edges rejected because they would create a cycle",
	})

	r.JobsIngestedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedinsight_jobs_ingested_total",
			Help: "Jobs processed by the ingestion pipeline",
		},
		[]string{"status"}, // processed, failed
	)

	r.LLMRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedinsight_llm_requests_total",
			Help: "Requests sent to the model provider",
		},
		[]string{"kind", "status"}, // chat|embedding, ok|error
	)

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetGraphSize updates the skills graph gauges
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.SkillsGraphNodes.Set(float64(nodes))
	r.SkillsGraphEdges.Set(float64(edges))
}

// RecordCycleRejection counts a rejected prerequisite
func (r *Registry) RecordCycleRejection() {
	r.SkillsCycleRejections.Inc()
}

// RecordIngestion counts one ingested job by outcome
func (r *Registry) RecordIngestion(status string) {
	r.JobsIngestedTotal.WithLabelValues(status).Inc()
}

// RecordLLMRequest counts one upstream model request
func (r *Registry) RecordLLMRequest(kind, status string) {
	r.LLMRequestsTotal.WithLabelValues(kind, status).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests and custom handlers
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
