package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/payment-recovery/internal/config"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
	events   []Event
	failWith error
	block    chan struct{}
	closed   bool
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	p.events = append(p.events, message.(Event))
	return p.failWith
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestRedisTracker_PublishesAndFlushesOnClose(t *testing.T) {
	pub := &recordingPublisher{}
	tracker := NewRedisTracker(pub, "analytics.payment", "payment-recovery", time.Second, zap.NewNop())

	tracker.Track(analytics.EventPaymentRetryStarted, analytics.Properties{"goal_id": "goal-1"})
	tracker.Track(analytics.EventPaymentRetrySuccess, nil)
	require.NoError(t, tracker.Close())

	assert.True(t, pub.closed)
	require.Len(t, pub.events, 2)
	assert.Equal(t, []string{"analytics.payment", "analytics.payment"}, pub.channels)
	assert.Equal(t, analytics.EventPaymentRetryStarted, pub.events[0].Name)
	assert.Equal(t, "goal-1", pub.events[0].Properties["goal_id"])
	assert.Equal(t, "payment-recovery", pub.events[0].Service)

	// Track after Close is ignored rather than panicking on a closed channel.
	tracker.Track(analytics.EventPaymentFailed, nil)
	assert.NoError(t, tracker.Close())
}

func TestRedisTracker_NeverBlocks(t *testing.T) {
	pub := &recordingPublisher{block: make(chan struct{})}
	core, logs := observer.New(zapcore.WarnLevel)
	tracker := NewRedisTracker(pub, "ch", "svc", time.Second, zap.New(core))

	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBufferSize*2; i++ {
			tracker.Track(analytics.EventPaymentFailed, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Track blocked while the publisher was stuck")
	}
	assert.NotZero(t, logs.FilterMessage("Analytics buffer full, dropping event").Len())

	close(pub.block)
	require.NoError(t, tracker.Close())
}

func TestRedisTracker_PublishErrorIsLogged(t *testing.T) {
	pub := &recordingPublisher{failWith: errors.New("connection reset")}
	core, logs := observer.New(zapcore.WarnLevel)
	tracker := NewRedisTracker(pub, "ch", "svc", time.Second, zap.New(core))

	tracker.Track(analytics.EventPaymentFailed, nil)
	require.NoError(t, tracker.Close())

	assert.Equal(t, 1, logs.FilterMessage("Failed to publish analytics event").Len())
}

func TestLogTracker(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	NewLogTracker(zap.New(core)).Track(analytics.EventPaymentFailed, analytics.Properties{"error_type": "expired_card"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Analytics event", entry.Message)
	assert.Equal(t, analytics.EventPaymentFailed, entry.ContextMap()["event"])
}

func TestNewTracker(t *testing.T) {
	tests := []struct {
		driver  string
		want    interface{}
		wantErr bool
	}{
		{driver: config.AnalyticsDriverNone, want: NopTracker{}},
		{driver: config.AnalyticsDriverLog, want: &LogTracker{}},
		{driver: "kafka", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &config.Config{Analytics: config.AnalyticsConfig{Driver: tt.driver}}
			tracker, closeFn, err := NewTracker(context.Background(), cfg, zap.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, tracker)
			assert.NoError(t, closeFn())
		})
	}
}
