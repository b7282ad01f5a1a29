package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"github.com/wekeepgrowing/payment-recovery/pkg/messaging"
	"go.uber.org/zap"
)

const defaultBufferSize = 256

// Event is the message published for each tracked event.
type Event struct {
	Name       string               `json:"event"`
	Properties analytics.Properties `json:"properties,omitempty"`
	Service    string               `json:"service"`
	Timestamp  time.Time            `json:"timestamp"`
}

// RedisTracker publishes events to a Redis channel from a background goroutine.
// Track never blocks; events are dropped when the buffer is full.
type RedisTracker struct {
	publisher messaging.Publisher
	channel   string
	service   string
	timeout   time.Duration
	logger    *zap.Logger

	events    chan Event
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func NewRedisTracker(publisher messaging.Publisher, channel, service string, publishTimeout time.Duration, logger *zap.Logger) *RedisTracker {
	if publishTimeout <= 0 {
		publishTimeout = 2 * time.Second
	}
	t := &RedisTracker{
		publisher: publisher,
		channel:   channel,
		service:   service,
		timeout:   publishTimeout,
		logger:    logger,
		events:    make(chan Event, defaultBufferSize),
	}

	t.wg.Add(1)
	go t.run()
	return t
}

func (t *RedisTracker) Track(event string, props analytics.Properties) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}

	select {
	case t.events <- Event{Name: event, Properties: props, Service: t.service, Timestamp: time.Now().UTC()}:
	default:
		t.logger.Warn("Analytics buffer full, dropping event", zap.String("event", event))
	}
}

func (t *RedisTracker) run() {
	defer t.wg.Done()

	for ev := range t.events {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		if err := t.publisher.Publish(ctx, t.channel, ev); err != nil {
			t.logger.Warn("Failed to publish analytics event",
				zap.String("event", ev.Name),
				zap.String("channel", t.channel),
				zap.Error(err))
		}
		cancel()
	}
}

// Close flushes buffered events and closes the publisher.
func (t *RedisTracker) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		close(t.events)
		t.mu.Unlock()

		t.wg.Wait()
		err = t.publisher.Close()
	})
	return err
}
