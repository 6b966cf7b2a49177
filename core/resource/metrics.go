package resource

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes cache counters to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	Hits         prometheus.Counter
	Misses       prometheus.Counter
	LoadFailures *prometheus.CounterVec
	DriverLoads  prometheus.Counter
	Evictions    prometheus.Counter
	Entries      prometheus.Gauge
	Paused       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resources",
			Name:      "cache_hits_total",
			Help:      "Factory requests served from the cache.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resources",
			Name:      "cache_misses_total",
			Help:      "Factory requests that required a storage load.",
		}),
		LoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resources",
			Name:      "load_failures_total",
			Help:      "Failed resource loads by stage.",
		}, []string{"stage"}),
		DriverLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resources",
			Name:      "driver_loads_total",
			Help:      "Resources committed to the rendering driver.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resources",
			Name:      "evictions_total",
			Help:      "Resources released and removed from the cache.",
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "resources",
			Name:      "cache_entries",
			Help:      "Resources currently cached.",
		}),
		Paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "resources",
			Name:      "paused",
			Help:      "1 while driver data is paused.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.LoadFailures, m.DriverLoads, m.Evictions, m.Entries, m.Paused)
	}
	return m
}

func (m *Metrics) hit() {
	if m != nil {
		m.Hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.Misses.Inc()
	}
}

func (m *Metrics) loadFailed(stage string) {
	if m != nil {
		m.LoadFailures.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) driverLoaded() {
	if m != nil {
		m.DriverLoads.Inc()
	}
}

func (m *Metrics) evicted() {
	if m != nil {
		m.Evictions.Inc()
	}
}

func (m *Metrics) setEntries(n int) {
	if m != nil {
		m.Entries.Set(float64(n))
	}
}

func (m *Metrics) setPaused(paused bool) {
	if m == nil {
		return
	}
	if paused {
		m.Paused.Set(1)
	} else {
		m.Paused.Set(0)
	}
}
