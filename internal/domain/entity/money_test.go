package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{amount: 1250, currency: "usd", want: "12.50 USD"},
		{amount: 5, currency: "EUR", want: "0.05 EUR"},
		{amount: 1000, currency: "krw", want: "1000 KRW"},
		{amount: 300, currency: "", want: "3.00 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
		})
	}
}

func TestProcessorError_SameFailure(t *testing.T) {
	a := &ProcessorError{Code: "card_declined", DeclineCode: "insufficient_funds", Message: "one"}
	b := &ProcessorError{Code: "card_declined", DeclineCode: "insufficient_funds", Message: "two"}
	c := &ProcessorError{Code: "card_declined", DeclineCode: "generic_decline"}

	assert.True(t, a.SameFailure(b))
	assert.False(t, a.SameFailure(c))
	assert.False(t, a.SameFailure(nil))

	var none *ProcessorError
	assert.False(t, none.SameFailure(a))
}

func TestRetryPaymentParams_CurrencyOrDefault(t *testing.T) {
	assert.Equal(t, "usd", RetryPaymentParams{}.CurrencyOrDefault())
	assert.Equal(t, "eur", RetryPaymentParams{Currency: "eur"}.CurrencyOrDefault())
}
