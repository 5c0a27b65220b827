// Package metrics holds the Prometheus collectors shared by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

var (
	// StoreOperations counts project store calls.
	// Labels: backend, op (list, replace), result (success, error)
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of project store operations",
		},
		[]string{"backend", "op", "result"},
	)

	// StoreDuration tracks project store latency.
	StoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of project store operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)

	// GitHubRequests counts repository listing calls.
	// Labels: source (api, proxy), result (success, not_found, upstream, unreachable, error)
	GitHubRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "github",
			Name:      "requests_total",
			Help:      "Total number of repository listing requests",
		},
		[]string{"source", "result"},
	)

	// ImportCache counts cache lookups. Labels: result (hit, miss)
	ImportCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "github",
			Name:      "cache_lookups_total",
			Help:      "Total number of repository cache lookups",
		},
		[]string{"result"},
	)

	// Mutations counts coordinator mutations.
	// Labels: op (add, edit, delete, import), result (applied, rejected, failed)
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "mutations_total",
			Help:      "Total number of project list mutations",
		},
		[]string{"op", "result"},
	)

	// ImportedRecords counts records created from repositories.
	ImportedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "imported_records_total",
			Help:      "Total number of records created by repository imports",
		},
	)

	// ActiveSessions is the number of live owner sessions on the server.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "active_sessions",
			Help:      "Number of owner sessions currently held in memory",
		},
	)
)

// ObserveStore records one store call.
func ObserveStore(backend, op string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(backend, op, result).Inc()
	StoreDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
