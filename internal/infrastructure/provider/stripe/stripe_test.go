package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/provider"
	"go.uber.org/zap"
)

func newStripeAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestStripeProvider_MissingSecretKey(t *testing.T) {
	p := NewStripeProvider("", "", zap.NewNop())

	_, err := p.Retrieve(context.Background(), "pi_123")
	assert.ErrorIs(t, err, provider.ErrNotConfigured)

	_, err = p.Confirm(context.Background(), "pi_123", "pm_123")
	assert.ErrorIs(t, err, provider.ErrNotConfigured)
}

func TestStripeProvider_Retrieve(t *testing.T) {
	server := newStripeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "pi_123",
			"object": "payment_intent",
			"status": "requires_payment_method",
			"amount": 2500,
			"currency": "usd",
			"metadata": {"goal_id": "goal_1"},
			"payment_method": {"id": "pm_1", "object": "payment_method", "card": {"brand": "visa", "last4": "4242"}},
			"last_payment_error": {
				"type": "card_error",
				"code": "card_declined",
				"decline_code": "insufficient_funds",
				"message": "Your card has insufficient funds.",
				"charge": "ch_1"
			}
		}`))
	})

	p := NewStripeProvider("sk_test_123", server.URL, zap.NewNop())
	pi, err := p.Retrieve(context.Background(), "pi_123")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", pi.ID)
	assert.Equal(t, provider.PaymentIntentStatusRequiresPaymentMethod, pi.Status)
	assert.Equal(t, int64(2500), pi.Amount)
	assert.Equal(t, "goal_1", pi.Metadata["goal_id"])
	assert.Equal(t, "4242", pi.CardLast4)
	assert.Equal(t, "visa", pi.CardBrand)
	require.NotNil(t, pi.LastPaymentError)
	assert.Equal(t, "card_declined", pi.LastPaymentError.Code)
	assert.Equal(t, "insufficient_funds", pi.LastPaymentError.DeclineCode)
	assert.Equal(t, "ch_1", pi.LastPaymentError.Charge)
	assert.Equal(t, "pi_123", pi.LastPaymentError.PaymentIntent)
}

func TestStripeProvider_Confirm(t *testing.T) {
	t.Run("requires action", func(t *testing.T) {
		server := newStripeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payment_intents/pi_123/confirm", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "pm_card", r.PostForm.Get("payment_method"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "pi_123", "object": "payment_intent", "status": "requires_action", "client_secret": "cs_123"}`))
		})

		p := NewStripeProvider("sk_test_123", server.URL, zap.NewNop())
		pi, err := p.Confirm(context.Background(), "pi_123", "pm_card")
		require.NoError(t, err)
		assert.Equal(t, provider.PaymentIntentStatusRequiresAction, pi.Status)
		assert.Equal(t, "cs_123", pi.ClientSecret)
	})

	t.Run("card error becomes processor error", func(t *testing.T) {
		server := newStripeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error": {
				"type": "card_error",
				"code": "expired_card",
				"message": "Your card has expired.",
				"param": "exp_month",
				"charge": "ch_2"
			}}`))
		})

		p := NewStripeProvider("sk_test_123", server.URL, zap.NewNop())
		_, err := p.Confirm(context.Background(), "pi_123", "pm_card")
		require.Error(t, err)

		var pe *entity.ProcessorError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "card_error", pe.Type)
		assert.Equal(t, "expired_card", pe.Code)
		assert.Equal(t, "exp_month", pe.Param)
		assert.Equal(t, "ch_2", pe.Charge)
	})
}

func TestToProcessorError_Nil(t *testing.T) {
	assert.Nil(t, ToProcessorError(nil))
}
