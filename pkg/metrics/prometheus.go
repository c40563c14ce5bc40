// Package metrics exposes Prometheus metrics for the shot tracker service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1}

// Manager owns the registry and every collector the service reports.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	shotsSaved       *prometheus.CounterVec
	shotSaveErrors   prometheus.Counter
	goalUpdates      prometheus.Counter
	statsRequests    *prometheus.CounterVec
	aggregateLatency *prometheus.HistogramVec
}

// NewManager builds a Manager with its own registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "shottracker",
		buckets:   defaultBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.shotsSaved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "shots",
		Name:      "saved_total",
		Help:      "Shot records written, by zone category.",
	}, []string{"category"})
	m.shotSaveErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "shots",
		Name:      "save_errors_total",
		Help:      "Shot record writes that failed.",
	})
	m.goalUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "settings",
		Name:      "goal_updates_total",
		Help:      "Goal percentage updates.",
	})
	m.statsRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "stats",
		Name:      "requests_total",
		Help:      "Aggregation requests by view and cache outcome.",
	}, []string{"view", "cache"})
	m.aggregateLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "stats",
		Name:      "aggregate_seconds",
		Help:      "Time spent computing an aggregated view.",
		Buckets:   m.buckets,
	}, []string{"view"})

	m.registry.MustRegister(m.shotsSaved, m.shotSaveErrors, m.goalUpdates, m.statsRequests, m.aggregateLatency)
	return m
}

// ShotSaved counts a persisted record of the given category.
func (m *Manager) ShotSaved(category string) {
	if m == nil {
		return
	}
	m.shotsSaved.WithLabelValues(category).Inc()
}

// ShotSaveFailed counts a failed write.
func (m *Manager) ShotSaveFailed() {
	if m == nil {
		return
	}
	m.shotSaveErrors.Inc()
}

// GoalUpdated counts a goal change.
func (m *Manager) GoalUpdated() {
	if m == nil {
		return
	}
	m.goalUpdates.Inc()
}

// StatsServed counts an aggregation request; hit reports whether the cache answered it.
func (m *Manager) StatsServed(view string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.statsRequests.WithLabelValues(view, outcome).Inc()
}

// ObserveAggregate records how long computing view took.
func (m *Manager) ObserveAggregate(view string, d time.Duration) {
	if m == nil {
		return
	}
	m.aggregateLatency.WithLabelValues(view).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
