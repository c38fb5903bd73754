package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// Metrics implements water.Recorder and store.Observer on top of Prometheus
// collectors.
type Metrics struct {
	sourceFetches *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
	guardTimeouts *prometheus.CounterVec
	entries       prometheus.Gauge
	circuitState  *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bathing_source_fetch_total",
			Help: "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bathing_cache_requests_total",
			Help: "Cache lookups by dataset and result (hit, miss, evict).",
		}, []string{"key", "result"}),
		guardTimeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bathing_guard_timeouts_total",
			Help: "Top-level operations that exceeded the execution deadline.",
		}, []string{"operation"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bathing_aggregated_entries",
			Help: "Number of entries in the last aggregated table.",
		}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bathing_source_circuit_state",
			Help: "Circuit breaker state per source (0 closed, 1 half, 2 open).",
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.sourceFetches,
		m.cacheRequests,
		m.guardTimeouts,
		m.entries,
		m.circuitState,
	)

	return m
}

func (m *Metrics) SourceFetched(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.sourceFetches.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) GuardTimedOut(operation string) {
	m.guardTimeouts.WithLabelValues(operation).Inc()
}

func (m *Metrics) Aggregated(entries int) {
	m.entries.Set(float64(entries))
}

func (m *Metrics) CacheHit(key string) {
	m.cacheRequests.WithLabelValues(key, "hit").Inc()
}

func (m *Metrics) CacheMiss(key string) {
	m.cacheRequests.WithLabelValues(key, "miss").Inc()
}

func (m *Metrics) CacheEvicted(key string) {
	m.cacheRequests.WithLabelValues(key, "evict").Inc()
}

// CircuitChanged records a breaker transition.
func (m *Metrics) CircuitChanged(source string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	m.circuitState.WithLabelValues(source).Set(v)
}
