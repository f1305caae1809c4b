// Package metrics registers the Prometheus instruments for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	JourneysPlanned   *prometheus.CounterVec
	FormsPrefilled    *prometheus.CounterVec
	FormsSubmitted    *prometheus.CounterVec
	ConsentsGranted   prometheus.Counter
	CleanupRuns       prometheus.Counter
	JourneysReaped    prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
	HTTPLatencySecond *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		JourneysPlanned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathways_journeys_planned_total",
			Help: "Journeys planned, by life event.",
		}, []string{"life_event"}),
		FormsPrefilled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathways_forms_prefilled_total",
			Help: "Prefill payloads generated, by step.",
		}, []string{"step"}),
		FormsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathways_forms_submitted_total",
			Help: "Form submissions recorded, by step.",
		}, []string{"step"}),
		ConsentsGranted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pathways_consents_granted_total",
			Help: "Consent grants recorded in the ledger.",
		}),
		CleanupRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "pathways_cleanup_runs_total",
			Help: "TTL cleanup executions.",
		}),
		JourneysReaped: factory.NewCounter(prometheus.CounterOpts{
			Name: "pathways_journeys_reaped_total",
			Help: "Journey namespaces removed by TTL cleanup.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathways_http_requests_total",
			Help: "HTTP requests served, by route and status class.",
		}, []string{"route", "status"}),
		HTTPLatencySecond: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathways_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
