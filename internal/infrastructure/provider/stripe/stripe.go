package stripe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/provider"
	"go.uber.org/zap"
)

// StripeProvider implements provider.PaymentIntentProvider on the Stripe PaymentIntents API.
// The API client is built on first use so a missing key only fails the call that needs it.
type StripeProvider struct {
	secretKey string
	apiURL    string
	logger    *zap.Logger

	once    sync.Once
	client  *paymentintent.Client
	initErr error
}

// NewStripeProvider creates a new Stripe provider. apiURL overrides the Stripe API base URL
// and may be empty.
func NewStripeProvider(secretKey, apiURL string, logger *zap.Logger) *StripeProvider {
	return &StripeProvider{
		secretKey: secretKey,
		apiURL:    apiURL,
		logger:    logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

func (s *StripeProvider) paymentIntents() (*paymentintent.Client, error) {
	s.once.Do(func() {
		if s.secretKey == "" {
			s.initErr = provider.ErrNotConfigured
			s.logger.Error("Stripe secret key is not configured")
			return
		}

		cfg := &stripe.BackendConfig{
			// The retry flow decides on retries itself.
			MaxNetworkRetries: stripe.Int64(0),
		}
		if s.apiURL != "" {
			cfg.URL = stripe.String(s.apiURL)
		}

		s.client = &paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Key: s.secretKey,
		}
	})
	return s.client, s.initErr
}

// Retrieve fetches a payment intent with its payment method expanded
func (s *StripeProvider) Retrieve(ctx context.Context, paymentIntentID string) (*provider.PaymentIntent, error) {
	client, err := s.paymentIntents()
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("payment_method")

	pi, err := client.Get(paymentIntentID, params)
	if err != nil {
		return nil, convertError(err)
	}
	return toPaymentIntent(pi), nil
}

// Confirm confirms a payment intent with the given payment method
func (s *StripeProvider) Confirm(ctx context.Context, paymentIntentID, paymentMethodID string) (*provider.PaymentIntent, error) {
	client, err := s.paymentIntents()
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx
	params.AddExpand("payment_method")

	pi, err := client.Confirm(paymentIntentID, params)
	if err != nil {
		s.logger.Debug("Stripe confirm returned error",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return nil, convertError(err)
	}
	return toPaymentIntent(pi), nil
}

// convertError turns a *stripe.Error into an *entity.ProcessorError and wraps anything else.
func convertError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return ToProcessorError(stripeErr)
	}
	return fmt.Errorf("stripe request failed: %w", err)
}

// ToProcessorError maps a Stripe API error onto the processor error shape.
func ToProcessorError(e *stripe.Error) *entity.ProcessorError {
	if e == nil {
		return nil
	}
	pe := &entity.ProcessorError{
		Type:        string(e.Type),
		Code:        string(e.Code),
		DeclineCode: string(e.DeclineCode),
		Message:     e.Msg,
		Param:       e.Param,
		Charge:      e.ChargeID,
	}
	if e.PaymentIntent != nil {
		pe.PaymentIntent = e.PaymentIntent.ID
	}
	return pe
}

func toPaymentIntent(pi *stripe.PaymentIntent) *provider.PaymentIntent {
	result := &provider.PaymentIntent{
		ID:               pi.ID,
		Status:           provider.PaymentIntentStatus(pi.Status),
		ClientSecret:     pi.ClientSecret,
		Amount:           pi.Amount,
		Currency:         string(pi.Currency),
		LastPaymentError: ToProcessorError(pi.LastPaymentError),
		Metadata:         pi.Metadata,
	}
	if result.LastPaymentError != nil && result.LastPaymentError.PaymentIntent == "" {
		result.LastPaymentError.PaymentIntent = pi.ID
	}
	if pm := pi.PaymentMethod; pm != nil && pm.Card != nil {
		result.CardLast4 = pm.Card.Last4
		result.CardBrand = string(pm.Card.Brand)
	}
	return result
}
