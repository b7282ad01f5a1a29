package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
)

var (
	// RetryOutcomes counts finished retries by outcome
	RetryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_retry_outcomes_total",
			Help: "Total number of payment retries by outcome",
		},
		[]string{"outcome"},
	)

	// ErrorsClassified counts recorded payment failures by error type
	ErrorsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_errors_classified_total",
			Help: "Total number of recorded payment failures by classified error type",
		},
		[]string{"type"},
	)

	// RetryDuration tracks how long a retry round trip took
	RetryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_retry_duration_seconds",
			Help:    "Payment retry duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
	)
)

// tracker records metrics from analytics events before forwarding them.
type tracker struct {
	next analytics.Tracker
}

// NewTracker wraps next so every retry and failure event also updates the Prometheus metrics.
func NewTracker(next analytics.Tracker) analytics.Tracker {
	return &tracker{next: next}
}

func (t *tracker) Track(event string, props analytics.Properties) {
	switch event {
	case analytics.EventPaymentFailed:
		if errType, ok := props["error_type"].(string); ok {
			ErrorsClassified.WithLabelValues(errType).Inc()
		}
	case analytics.EventPaymentRetrySuccess, analytics.EventPaymentRetryFailed:
		if outcome, ok := props["outcome"].(string); ok {
			RetryOutcomes.WithLabelValues(outcome).Inc()
		}
		if ms, ok := props["duration_ms"].(int64); ok {
			RetryDuration.Observe((time.Duration(ms) * time.Millisecond).Seconds())
		}
	}

	t.next.Track(event, props)
}
