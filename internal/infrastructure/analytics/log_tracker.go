package analytics

import (
	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"go.uber.org/zap"
)

// LogTracker writes events to the service log.
type LogTracker struct {
	logger *zap.Logger
}

func NewLogTracker(logger *zap.Logger) *LogTracker {
	return &LogTracker{logger: logger.Named("analytics")}
}

func (t *LogTracker) Track(event string, props analytics.Properties) {
	t.logger.Info("Analytics event",
		zap.String("event", event),
		zap.Any("properties", props))
}

// NopTracker discards events.
type NopTracker struct{}

func (NopTracker) Track(string, analytics.Properties) {}
