package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xandnet/peerwatch/models"
)

// Metrics holds the Prometheus instruments for the dashboard service.
type Metrics struct {
	CollectionsTotal    prometheus.Counter
	CollectionDuration  prometheus.Histogram
	PeersDiscovered     prometheus.Gauge
	PeersWithTelemetry  prometheus.Gauge
	CollectionErrors    *prometheus.CounterVec
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
}

// NewMetrics creates and registers all instruments on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		CollectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "peerwatch",
			Subsystem: "collector",
			Name:      "collections_total",
			Help:      "Total number of collection cycles run",
		}),
		CollectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "peerwatch",
			Subsystem: "collector",
			Name:      "collection_duration_seconds",
			Help:      "Duration of collection cycles",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		PeersDiscovered: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "peerwatch",
			Subsystem: "collector",
			Name:      "peers_discovered",
			Help:      "Unique peers discovered by the last collection cycle",
		}),
		PeersWithTelemetry: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "peerwatch",
			Subsystem: "collector",
			Name:      "peers_with_telemetry",
			Help:      "Peers with reachable telemetry in the last collection cycle",
		}),
		CollectionErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "peerwatch",
			Subsystem: "collector",
			Name:      "collection_errors_total",
			Help:      "Collection errors by kind",
		}, []string{"kind"}),
		CacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "peerwatch",
			Subsystem: "api",
			Name:      "cache_hits_total",
			Help:      "Snapshot cache hits",
		}),
		CacheMissesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "peerwatch",
			Subsystem: "api",
			Name:      "cache_misses_total",
			Help:      "Snapshot cache misses",
		}),
	}
}

// ObserveCollection records one finished collection cycle.
func (m *Metrics) ObserveCollection(snapshot *models.Snapshot) {
	m.CollectionsTotal.Inc()
	m.CollectionDuration.Observe(float64(snapshot.DurationMS) / 1000)
	m.PeersDiscovered.Set(float64(snapshot.TotalDiscovered))
	m.PeersWithTelemetry.Set(float64(snapshot.TotalWithTelemetry))
	for _, e := range snapshot.Errors {
		m.CollectionErrors.WithLabelValues(string(e.Kind)).Inc()
	}
}
