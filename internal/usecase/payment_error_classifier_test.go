package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
	"github.com/wekeepgrowing/payment-recovery/internal/usecase"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name  string
		input *entity.ProcessorError
		want  entity.PaymentErrorType
	}{
		{name: "nil error", input: nil, want: entity.PaymentErrorUnknown},
		{name: "empty error", input: &entity.ProcessorError{}, want: entity.PaymentErrorUnknown},
		{name: "decline code wins over code", input: &entity.ProcessorError{Code: "card_declined", DeclineCode: "insufficient_funds"}, want: entity.PaymentErrorInsufficientFunds},
		{name: "decline code is case insensitive", input: &entity.ProcessorError{DeclineCode: "INSUFFICIENT_FUNDS"}, want: entity.PaymentErrorInsufficientFunds},
		{name: "card_expired decline code", input: &entity.ProcessorError{DeclineCode: "card_expired"}, want: entity.PaymentErrorExpiredCard},
		{name: "incorrect_cvc decline code", input: &entity.ProcessorError{DeclineCode: "incorrect_cvc"}, want: entity.PaymentErrorInvalidCardDetails},
		{name: "approve_with_id decline code", input: &entity.ProcessorError{DeclineCode: "approve_with_id"}, want: entity.PaymentErrorRequires3DS},
		{name: "generic decline", input: &entity.ProcessorError{Code: "card_declined", DeclineCode: "generic_decline"}, want: entity.PaymentErrorCardDeclined},
		{name: "stolen card", input: &entity.ProcessorError{DeclineCode: "stolen_card"}, want: entity.PaymentErrorCardDeclined},
		{name: "unknown decline code falls through to code", input: &entity.ProcessorError{Code: "expired_card", DeclineCode: "do_not_honor"}, want: entity.PaymentErrorExpiredCard},
		{name: "unknown decline code and no code", input: &entity.ProcessorError{DeclineCode: "do_not_honor"}, want: entity.PaymentErrorUnknown},
		{name: "rate limited declines", input: &entity.ProcessorError{Code: "card_decline_rate_limit_exceeded"}, want: entity.PaymentErrorCardDeclined},
		{name: "invalid account", input: &entity.ProcessorError{Code: "invalid_account"}, want: entity.PaymentErrorInvalidCardDetails},
		{name: "authentication failure", input: &entity.ProcessorError{Code: "payment_intent_authentication_failure"}, want: entity.PaymentErrorRequires3DS},
		{name: "processing error", input: &entity.ProcessorError{Code: "Processing_Error"}, want: entity.PaymentErrorNetwork},
		{name: "rate limit", input: &entity.ProcessorError{Type: "rate_limit_error", Code: "rate_limit"}, want: entity.PaymentErrorNetwork},
		{name: "unmapped code", input: &entity.ProcessorError{Code: "resource_missing"}, want: entity.PaymentErrorUnknown},
		{name: "type alone never classifies", input: &entity.ProcessorError{Type: "api_error", Message: "boom"}, want: entity.PaymentErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.CategorizeError(tt.input)
			assert.Equal(t, tt.want, got.Type)
			assert.Same(t, tt.input, got.RawError)
		})
	}
}

func TestCategorizeError_AlwaysReturnsClassifiedType(t *testing.T) {
	codes := []string{"", "card_declined", "expired_card", "api_error", "nonsense", "INVALID_CVC"}
	for _, code := range codes {
		for _, declineCode := range codes {
			got := usecase.CategorizeError(&entity.ProcessorError{Type: "card_error", Code: code, DeclineCode: declineCode})
			assert.Contains(t, entity.ClassifiedErrorTypes, got.Type)
			assert.NotEmpty(t, got.UserMessage)
		}
	}
}

func TestCategorizeError_StaticTablesByType(t *testing.T) {
	tests := []struct {
		input     *entity.ProcessorError
		retryable bool
		action    string
	}{
		{input: &entity.ProcessorError{DeclineCode: "insufficient_funds"}, retryable: true, action: "Add funds to your card or try a different card"},
		{input: &entity.ProcessorError{Code: "card_declined"}, retryable: false, action: "Try a different card or contact your bank"},
		{input: &entity.ProcessorError{Code: "invalid_cvc"}, retryable: true, action: "Double-check your card number, expiry date, and CVC"},
		{input: &entity.ProcessorError{Code: "expired_card"}, retryable: false},
		{input: &entity.ProcessorError{Code: "authentication_required"}, retryable: true, action: "Complete the verification with your bank"},
		{input: &entity.ProcessorError{Code: "api_connection_error"}, retryable: true, action: "Check your connection and try again"},
		{input: &entity.ProcessorError{Code: "something_else"}, retryable: false},
	}

	for _, tt := range tests {
		got := usecase.CategorizeError(tt.input)
		t.Run(string(got.Type), func(t *testing.T) {
			assert.Equal(t, tt.retryable, got.Retryable)
			if tt.action == "" {
				assert.Nil(t, got.SuggestedAction)
			} else {
				require.NotNil(t, got.SuggestedAction)
				assert.Equal(t, tt.action, *got.SuggestedAction)
			}

			// Same type, different payload, same copy.
			other := usecase.CategorizeError(&entity.ProcessorError{
				Type:        "card_error",
				Code:        tt.input.Code,
				DeclineCode: tt.input.DeclineCode,
				Message:     "a completely different processor message",
				Charge:      "ch_other",
			})
			assert.Equal(t, got.UserMessage, other.UserMessage)
		})
	}
}

func TestCategorizeError_Scenarios(t *testing.T) {
	t.Run("insufficient funds on a card decline", func(t *testing.T) {
		got := usecase.CategorizeError(&entity.ProcessorError{
			Type:        "card_error",
			Code:        "card_declined",
			DeclineCode: "insufficient_funds",
			Message:     "Your card has insufficient funds.",
		})

		assert.Equal(t, entity.PaymentErrorInsufficientFunds, got.Type)
		assert.True(t, got.Retryable)
		assert.Equal(t, "Your card doesn't have enough funds for this commitment", got.UserMessage)
		require.NotNil(t, got.SuggestedAction)
		assert.Equal(t, "Add funds to your card or try a different card", *got.SuggestedAction)
	})

	t.Run("api error without code", func(t *testing.T) {
		got := usecase.CategorizeError(&entity.ProcessorError{Type: "api_error", Message: "boom"})

		assert.Equal(t, entity.PaymentErrorUnknown, got.Type)
		assert.False(t, got.Retryable)
		assert.Equal(t, "Something went wrong. Please try again or contact support.", got.UserMessage)
		assert.Nil(t, got.SuggestedAction)
	})
}

func TestUserMessageFor(t *testing.T) {
	assert.Equal(t, "Your card has expired. Please use a different card.", usecase.UserMessageFor(entity.PaymentErrorExpiredCard))
	assert.Equal(t, usecase.UserMessageFor(entity.PaymentErrorUnknown), usecase.UserMessageFor(entity.PaymentErrorTimeout))
}
