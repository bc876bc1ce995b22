// Package metrics defines the Prometheus collectors of the search server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "search_server"

// Search outcomes recorded by ObserveSearch.
const (
	OutcomeHit      = "hit"
	OutcomeNoResult = "no_result"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	DocumentsIndexed prometheus.Counter
	IngestErrors     prometheus.Counter
	SearchRequests   *prometheus.CounterVec
	SearchResults    prometheus.Histogram
	NoResultRequests prometheus.Gauge
	DocumentCount    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_indexed_total",
			Help:      "Total number of documents successfully indexed.",
		}),
		IngestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_errors_total",
			Help:      "Total number of rejected documents.",
		}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total search requests by outcome (hit, no_result, error).",
		}, []string{"outcome"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of documents returned per search.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10},
		}),
		NoResultRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "no_result_requests",
			Help:      "Zero-result requests inside the request history window.",
		}),
		DocumentCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Number of indexed documents.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.DocumentsIndexed,
			m.IngestErrors,
			m.SearchRequests,
			m.SearchResults,
			m.NoResultRequests,
			m.DocumentCount,
		)
	}
	return m
}

// ObserveIngest records the outcome of one AddDocument call.
func (m *Metrics) ObserveIngest(err error, documentCount int) {
	if err != nil {
		m.IngestErrors.Inc()
		return
	}
	m.DocumentsIndexed.Inc()
	m.DocumentCount.Set(float64(documentCount))
}

// ObserveSearch records the outcome of one tracked search.
func (m *Metrics) ObserveSearch(results int, err error, noResultRequests int) {
	switch {
	case err != nil:
		m.SearchRequests.WithLabelValues(OutcomeError).Inc()
		return
	case results == 0:
		m.SearchRequests.WithLabelValues(OutcomeNoResult).Inc()
	default:
		m.SearchRequests.WithLabelValues(OutcomeHit).Inc()
	}
	m.SearchResults.Observe(float64(results))
	m.NoResultRequests.Set(float64(noResultRequests))
}
