package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	VerificationsTotal  *prometheus.CounterVec
	ReceiptsPersisted   prometheus.Counter
	TransactionsLinked  prometheus.Counter
	VerificationLatency prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bondbuy_verifications_total",
			Help: "Total number of mint verification requests by execution status",
		}, []string{"status"}),
		ReceiptsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bondbuy_receipts_persisted_total",
			Help: "Total number of execution receipts persisted",
		}),
		TransactionsLinked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bondbuy_transactions_linked_total",
			Help: "Total number of external transactions linked to receipts",
		}),
		VerificationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bondbuy_verification_duration_seconds",
			Help:    "End-to-end latency of the mint verification workflow",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveVerification records one completed verification run.
func (m *Metrics) ObserveVerification(status string, elapsed time.Duration) {
	m.VerificationsTotal.WithLabelValues(status).Inc()
	m.VerificationLatency.Observe(elapsed.Seconds())
}
