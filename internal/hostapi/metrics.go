package hostapi

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are kept to bounded-cardinality label sets, the same
// precaution the stream server observability takes for its own
// counters and histograms.
var (
	matchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "host_matches_started_total",
		Help: "Total matches started via the settlement shim",
	})

	matchesSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "host_matches_settled_total",
		Help: "Total matches settled via the settlement shim",
	})

	settleRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "host_settle_rejected_total",
		Help: "Settlement attempts rejected, by reason",
	}, []string{"reason"}) // bounded: settlement error names

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "host_connection_rejected_total",
		Help: "HTTP/WebSocket connections rejected before reaching a handler",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "ws_limit"

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "host_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "host_spectate_connections_active",
		Help: "Currently active spectate WebSocket connections",
	})
)

// RecordMatchStarted increments the started-match counter.
func RecordMatchStarted() { matchesStarted.Inc() }

// RecordMatchSettled increments the settled-match counter.
func RecordMatchSettled() { matchesSettled.Inc() }

// RecordSettleRejected records a settlement rejection by reason.
func RecordSettleRejected(reason string) { settleRejected.WithLabelValues(reason).Inc() }

// RecordConnectionRejected records a rejected connection by reason.
func RecordConnectionRejected(reason string) { connectionRejected.WithLabelValues(reason).Inc() }

// RecordRequest records HTTP request latency for a route.
func RecordRequest(method, route string, d time.Duration) {
	requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// UpdateSpectateConnections sets the active spectate connection gauge.
func UpdateSpectateConnections(n int) { wsConnectionsActive.Set(float64(n)) }

// DebugConfig configures the internal observability mux.
type DebugConfig struct {
	Enabled    bool
	ListenAddr string // must stay loopback-only
}

// DefaultDebugConfig returns safe, loopback-only defaults.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{Enabled: true, ListenAddr: "127.0.0.1:6061"}
}

// NewDebugMux builds the pprof + Prometheus + health mux. It does not
// start a listener; callers decide when and how to serve it.
func NewDebugMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}
