package analytics

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/payment-recovery/internal/config"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"github.com/wekeepgrowing/payment-recovery/pkg/messaging"
	"go.uber.org/zap"
)

// NewTracker builds the tracker selected by analytics.driver. The returned close
// function flushes pending events and is safe to call for every driver.
func NewTracker(ctx context.Context, cfg *config.Config, logger *zap.Logger) (analytics.Tracker, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Analytics.Driver {
	case config.AnalyticsDriverNone:
		return NopTracker{}, noClose, nil
	case config.AnalyticsDriverLog:
		return NewLogTracker(logger), noClose, nil
	case config.AnalyticsDriverRedis:
		publisher, err := messaging.NewRedisPublisher(ctx, messaging.Config{
			URL:      cfg.Redis.URL,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect analytics publisher: %w", err)
		}
		tracker := NewRedisTracker(publisher, cfg.Analytics.Channel, cfg.Service.Name, cfg.Analytics.PublishTimeout, logger.Named("analytics"))
		return tracker, tracker.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported analytics driver: %s", cfg.Analytics.Driver)
	}
}
