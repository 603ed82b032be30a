package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the channel tracker.
// Collectors are usable immediately; Init registers them for exposition.
var Metrics = struct {
	LookupsTotal     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	SweepDuration    prometheus.Histogram
	SweepChannels    *prometheus.CounterVec
	SnapshotsTotal   prometheus.Counter
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{
	LookupsTotal: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channeltracker_lookups_total",
			Help: "Total channel lookups, by source (cache or live).",
		},
		[]string{"source"},
	),
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "channeltracker_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "channeltracker_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
	UpstreamRequests: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channeltracker_upstream_requests_total",
			Help: "Total YouTube Data API requests, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	),
	UpstreamDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "channeltracker_upstream_request_duration_seconds",
			Help:    "Duration of YouTube Data API requests.",
			Buckets: prometheus.DefBuckets,
		},
	),
	SweepDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "channeltracker_sweep_duration_seconds",
			Help:    "Duration of full refresh sweeps.",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
		},
	),
	SweepChannels: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channeltracker_sweep_channels_total",
			Help: "Channels processed by sweeps, by result.",
		},
		[]string{"result"},
	),
	SnapshotsTotal: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "channeltracker_snapshots_total",
			Help: "Total statistics snapshots appended.",
		},
	),
}

// Init registers all Prometheus collectors. Call once at startup.
func Init(pool *pgxpool.Pool) {
	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "channeltracker_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "channeltracker_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.LookupsTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.UpstreamRequests,
		Metrics.UpstreamDuration,
		Metrics.SweepDuration,
		Metrics.SweepChannels,
		Metrics.SnapshotsTotal,
	)
}
