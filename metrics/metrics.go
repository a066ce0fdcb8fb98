package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Name:      "upstream_requests_total",
		Help:      "Requests sent to the Helium API, by endpoint and status code.",
	}, []string{"endpoint", "code"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "explorer",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of requests sent to the Helium API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	pagesLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "explorer",
		Name:      "pages_loaded_total",
		Help:      "Transaction pages appended to block views.",
	})

	viewFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "explorer",
		Name:      "view_failures_total",
		Help:      "Failed block view operations, by operation.",
	}, []string{"op"})

	sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "explorer",
		Name:      "sessions",
		Help:      "Block views currently held by front-ends.",
	})
)

func ObserveUpstream(endpoint string, code int, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func PageLoaded() {
	pagesLoaded.Inc()
}

func ViewFailed(op string) {
	viewFailures.WithLabelValues(op).Inc()
}

func SetSessions(n int) {
	sessions.Set(float64(n))
}
