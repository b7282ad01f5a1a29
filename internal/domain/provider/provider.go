package provider

import (
	"context"
	"errors"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
)

// ErrNotConfigured is returned on first use when the provider has no API key.
var ErrNotConfigured = errors.New("payment provider secret key is not configured")

// PaymentIntentProvider defines the payment intent operations the retry flow needs
type PaymentIntentProvider interface {
	// Retrieve fetches the current state of a payment intent
	Retrieve(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// Confirm confirms the payment intent with the given payment method.
	// A decline is reported as an *entity.ProcessorError.
	Confirm(ctx context.Context, paymentIntentID, paymentMethodID string) (*PaymentIntent, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// PaymentIntent is the provider-agnostic view of a payment intent
type PaymentIntent struct {
	ID               string
	Status           PaymentIntentStatus
	ClientSecret     string
	Amount           int64
	Currency         string
	LastPaymentError *entity.ProcessorError
	Metadata         map[string]string
	CardLast4        string
	CardBrand        string
}

// PaymentIntentStatus represents the status of a payment intent
type PaymentIntentStatus string

const (
	PaymentIntentStatusRequiresPaymentMethod PaymentIntentStatus = "requires_payment_method"
	PaymentIntentStatusRequiresConfirmation  PaymentIntentStatus = "requires_confirmation"
	PaymentIntentStatusRequiresAction        PaymentIntentStatus = "requires_action"
	PaymentIntentStatusProcessing            PaymentIntentStatus = "processing"
	PaymentIntentStatusSucceeded             PaymentIntentStatus = "succeeded"
	PaymentIntentStatusCanceled              PaymentIntentStatus = "canceled"
)

// ProviderType represents the type of payment provider
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
)
