// Package metrics exposes Prometheus instrumentation for catalog loading,
// per-generation scans and soup sweeps.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lifescan"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	scansTotal        prometheus.Counter
	scanErrors        prometheus.Counter
	scanDuration      prometheus.Histogram
	componentsPerScan prometheus.Histogram
	oversizedTotal    prometheus.Counter
	matchesTotal      *prometheus.CounterVec
	discoveriesTotal  *prometheus.CounterVec

	catalogPatterns   prometheus.Gauge
	catalogEntries    prometheus.Gauge
	catalogRejected   prometheus.Gauge
	catalogCollisions prometheus.Gauge

	soupsTotal prometheus.Counter
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		scansTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "scans_total",
			Help: "Generations scanned for known patterns.",
		}),
		scanErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "scan_errors_total",
			Help: "Scans rejected because of invalid input.",
		}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "scan_duration_seconds",
			Help:    "Time spent scanning one generation.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		componentsPerScan: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "components_per_scan",
			Help:    "Connected components found per scan.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		oversizedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "oversized_components_total",
			Help: "Components skipped for exceeding the bounding box limit.",
		}),
		matchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "matches_total",
			Help: "Components matched against the catalog, by pattern.",
		}, []string{"pattern"}),
		discoveriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "discoveries_total",
			Help: "First sightings of a pattern within a session.",
		}, []string{"pattern"}),
		catalogPatterns: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "catalog_patterns",
			Help: "Patterns accepted into the catalog.",
		}),
		catalogEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "catalog_entries",
			Help: "Distinct orientation hashes in the catalog.",
		}),
		catalogRejected: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "catalog_rejected_patterns",
			Help: "Patterns rejected for exceeding the bounding box limit.",
		}),
		catalogCollisions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "catalog_collisions",
			Help: "Hash collisions between distinct pattern names.",
		}),
		soupsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "soups_total",
			Help: "Random soups simulated by the sweep.",
		}),
	}
}

// ObserveScan records one completed scan.
func (m *Metrics) ObserveScan(d time.Duration, components, oversized int) {
	if m == nil {
		return
	}
	m.scansTotal.Inc()
	m.scanDuration.Observe(d.Seconds())
	m.componentsPerScan.Observe(float64(components))
	m.oversizedTotal.Add(float64(oversized))
}

// ObserveScanError records a scan rejected for invalid input.
func (m *Metrics) ObserveScanError() {
	if m == nil {
		return
	}
	m.scanErrors.Inc()
}

// ObserveMatch records a component that resolved to name.
func (m *Metrics) ObserveMatch(name string) {
	if m == nil {
		return
	}
	m.matchesTotal.WithLabelValues(name).Inc()
}

// ObserveDiscovery records the first sighting of name in a session.
func (m *Metrics) ObserveDiscovery(name string) {
	if m == nil {
		return
	}
	m.discoveriesTotal.WithLabelValues(name).Inc()
}

// CatalogStats is the subset of catalog state exported as gauges.
type CatalogStats struct {
	Patterns   int
	Entries    int
	Rejected   int
	Collisions int
}

// SetCatalog publishes catalog size gauges.
func (m *Metrics) SetCatalog(s CatalogStats) {
	if m == nil {
		return
	}
	m.catalogPatterns.Set(float64(s.Patterns))
	m.catalogEntries.Set(float64(s.Entries))
	m.catalogRejected.Set(float64(s.Rejected))
	m.catalogCollisions.Set(float64(s.Collisions))
}

// ObserveSoup records a finished soup.
func (m *Metrics) ObserveSoup() {
	if m == nil {
		return
	}
	m.soupsTotal.Inc()
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
