// Package metrics exposes bake and lighting throughput as Prometheus
// collectors. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blockbake"

type Metrics struct {
	QuadsBaked      prometheus.Counter
	QuadsLit        prometheus.Counter
	QuadsCulled     prometheus.Counter
	AOCacheHits     prometheus.Counter
	AOCacheMisses   prometheus.Counter
	RebuildJobs     prometheus.Counter
	RebuildFailures prometheus.Counter
	RebuildQueue    prometheus.Gauge
	RebuildDuration prometheus.Histogram
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which tests use to read values in isolation.
func New(reg prometheus.Registerer) *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	m := &Metrics{
		QuadsBaked:      counter("quads_baked_total", "Quads finished by the bakery."),
		QuadsLit:        counter("quads_lit_total", "Quads written to output buffers by the lighter."),
		QuadsCulled:     counter("quads_culled_total", "Quads skipped because an opaque neighbour hides their face."),
		AOCacheHits:     counter("ao_cache_hits_total", "Brightness samples served from the AO cache."),
		AOCacheMisses:   counter("ao_cache_misses_total", "Brightness samples fetched from the block view."),
		RebuildJobs:     counter("rebuild_jobs_total", "Rebuild jobs completed by the worker pool."),
		RebuildFailures: counter("rebuild_failures_total", "Rebuild jobs that returned an error."),
		RebuildQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rebuild_queue_length",
			Help:      "Rebuild jobs waiting for a worker.",
		}),
		RebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Wall time of one rebuild job.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.QuadsBaked, m.QuadsLit, m.QuadsCulled, m.AOCacheHits, m.AOCacheMisses,
			m.RebuildJobs, m.RebuildFailures, m.RebuildQueue, m.RebuildDuration)
	}
	return m
}

func (m *Metrics) AddBaked(n int) {
	if m == nil {
		return
	}
	m.QuadsBaked.Add(float64(n))
}

// Rebuild summarises one finished rebuild job.
type Rebuild struct {
	Lit, Culled  int
	Hits, Misses uint64
	Duration     time.Duration
	Failed       bool
}

func (m *Metrics) ObserveRebuild(r Rebuild) {
	if m == nil {
		return
	}
	m.RebuildJobs.Inc()
	if r.Failed {
		m.RebuildFailures.Inc()
	}
	m.QuadsLit.Add(float64(r.Lit))
	m.QuadsCulled.Add(float64(r.Culled))
	m.AOCacheHits.Add(float64(r.Hits))
	m.AOCacheMisses.Add(float64(r.Misses))
	m.RebuildDuration.Observe(r.Duration.Seconds())
}

func (m *Metrics) SetQueueLength(n int) {
	if m == nil {
		return
	}
	m.RebuildQueue.Set(float64(n))
}

// Handler serves the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
