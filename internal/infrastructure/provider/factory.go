package provider

import (
	"fmt"

	"github.com/wekeepgrowing/payment-recovery/internal/config"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/provider"
	stripeProvider "github.com/wekeepgrowing/payment-recovery/internal/infrastructure/provider/stripe"
	"go.uber.org/zap"
)

// Factory creates payment providers based on the provider type
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a payment intent provider based on the provider type
func (f *Factory) GetProvider(providerType provider.ProviderType) (provider.PaymentIntentProvider, error) {
	switch providerType {
	case provider.ProviderTypeStripe:
		return f.createStripeProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// GetProviderFromString returns a payment intent provider from a string type
func (f *Factory) GetProviderFromString(providerStr string) (provider.PaymentIntentProvider, error) {
	// Default to Stripe if not specified
	if providerStr == "" {
		providerStr = string(provider.ProviderTypeStripe)
	}
	return f.GetProvider(provider.ProviderType(providerStr))
}

// createStripeProvider creates a new Stripe provider instance. A missing secret key is
// reported by the provider on first use, not here.
func (f *Factory) createStripeProvider() provider.PaymentIntentProvider {
	if f.config.Stripe.SecretKey == "" {
		f.logger.Warn("Stripe secret key not configured; retries will fail until it is set")
	}
	return stripeProvider.NewStripeProvider(
		f.config.Stripe.SecretKey,
		f.config.Stripe.APIURL,
		f.logger.Named("stripe"),
	)
}
