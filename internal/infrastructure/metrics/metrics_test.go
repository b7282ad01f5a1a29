package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
)

type countingTracker struct {
	events []string
}

func (c *countingTracker) Track(event string, _ analytics.Properties) {
	c.events = append(c.events, event)
}

func TestTracker_RecordsMetricsAndForwards(t *testing.T) {
	next := &countingTracker{}
	tracker := NewTracker(next)

	failedBefore := testutil.ToFloat64(ErrorsClassified.WithLabelValues("expired_card"))
	timeoutBefore := testutil.ToFloat64(RetryOutcomes.WithLabelValues("timeout"))
	successBefore := testutil.ToFloat64(RetryOutcomes.WithLabelValues("success"))

	tracker.Track(analytics.EventPaymentFailed, analytics.Properties{"error_type": "expired_card"})
	tracker.Track(analytics.EventPaymentRetryStarted, analytics.Properties{"attempt_number": 1})
	tracker.Track(analytics.EventPaymentRetryFailed, analytics.Properties{"outcome": "timeout", "duration_ms": int64(10000)})
	tracker.Track(analytics.EventPaymentRetrySuccess, analytics.Properties{"outcome": "success", "duration_ms": int64(420)})

	assert.Equal(t, failedBefore+1, testutil.ToFloat64(ErrorsClassified.WithLabelValues("expired_card")))
	assert.Equal(t, timeoutBefore+1, testutil.ToFloat64(RetryOutcomes.WithLabelValues("timeout")))
	assert.Equal(t, successBefore+1, testutil.ToFloat64(RetryOutcomes.WithLabelValues("success")))
	assert.Equal(t, []string{
		analytics.EventPaymentFailed,
		analytics.EventPaymentRetryStarted,
		analytics.EventPaymentRetryFailed,
		analytics.EventPaymentRetrySuccess,
	}, next.events)
}
