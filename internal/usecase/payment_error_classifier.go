package usecase

import (
	"strings"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
)

var declineCodeTypes = map[string]entity.PaymentErrorType{
	"insufficient_funds": entity.PaymentErrorInsufficientFunds,

	"expired_card": entity.PaymentErrorExpiredCard,
	"card_expired": entity.PaymentErrorExpiredCard,

	"incorrect_number":     entity.PaymentErrorInvalidCardDetails,
	"invalid_number":       entity.PaymentErrorInvalidCardDetails,
	"incorrect_cvc":        entity.PaymentErrorInvalidCardDetails,
	"invalid_cvc":          entity.PaymentErrorInvalidCardDetails,
	"incorrect_zip":        entity.PaymentErrorInvalidCardDetails,
	"invalid_expiry_month": entity.PaymentErrorInvalidCardDetails,
	"invalid_expiry_year":  entity.PaymentErrorInvalidCardDetails,

	"authentication_required": entity.PaymentErrorRequires3DS,
	"approve_with_id":         entity.PaymentErrorRequires3DS,

	"generic_decline":                  entity.PaymentErrorCardDeclined,
	"card_not_supported":               entity.PaymentErrorCardDeclined,
	"currency_not_supported":           entity.PaymentErrorCardDeclined,
	"duplicate_transaction":            entity.PaymentErrorCardDeclined,
	"fraudulent":                       entity.PaymentErrorCardDeclined,
	"merchant_blacklist":               entity.PaymentErrorCardDeclined,
	"pickup_card":                      entity.PaymentErrorCardDeclined,
	"restricted_card":                  entity.PaymentErrorCardDeclined,
	"revocation_of_all_authorizations": entity.PaymentErrorCardDeclined,
	"revocation_of_authorization":      entity.PaymentErrorCardDeclined,
	"security_violation":               entity.PaymentErrorCardDeclined,
	"stolen_card":                      entity.PaymentErrorCardDeclined,
	"stop_payment_order":               entity.PaymentErrorCardDeclined,
}

var errorCodeTypes = map[string]entity.PaymentErrorType{
	"card_declined":                    entity.PaymentErrorCardDeclined,
	"card_decline_rate_limit_exceeded": entity.PaymentErrorCardDeclined,

	"incorrect_number":     entity.PaymentErrorInvalidCardDetails,
	"invalid_number":       entity.PaymentErrorInvalidCardDetails,
	"invalid_expiry_month": entity.PaymentErrorInvalidCardDetails,
	"invalid_expiry_year":  entity.PaymentErrorInvalidCardDetails,
	"invalid_cvc":          entity.PaymentErrorInvalidCardDetails,
	"incorrect_cvc":        entity.PaymentErrorInvalidCardDetails,
	"incorrect_zip":        entity.PaymentErrorInvalidCardDetails,
	"invalid_account":      entity.PaymentErrorInvalidCardDetails,

	"expired_card": entity.PaymentErrorExpiredCard,

	"authentication_required":               entity.PaymentErrorRequires3DS,
	"payment_intent_authentication_failure": entity.PaymentErrorRequires3DS,

	"api_connection_error": entity.PaymentErrorNetwork,
	"api_error":            entity.PaymentErrorNetwork,
	"rate_limit":           entity.PaymentErrorNetwork,
	"processing_error":     entity.PaymentErrorNetwork,
}

var userMessages = map[entity.PaymentErrorType]string{
	entity.PaymentErrorInsufficientFunds:  "Your card doesn't have enough funds for this commitment",
	entity.PaymentErrorCardDeclined:       "Your card was declined. Please try a different payment method.",
	entity.PaymentErrorInvalidCardDetails: "Some of your card details are incorrect. Please check and try again.",
	entity.PaymentErrorExpiredCard:        "Your card has expired. Please use a different card.",
	entity.PaymentErrorRequires3DS:        "Your bank requires additional verification for this payment.",
	entity.PaymentErrorNetwork:            "We couldn't reach the payment processor. Please try again.",
	entity.PaymentErrorUnknown:            "Something went wrong. Please try again or contact support.",
}

var retryableTypes = map[entity.PaymentErrorType]bool{
	entity.PaymentErrorInsufficientFunds:  true,
	entity.PaymentErrorInvalidCardDetails: true,
	entity.PaymentErrorRequires3DS:        true,
	entity.PaymentErrorNetwork:            true,
}

// expired_card intentionally has no entry.
var suggestedActions = map[entity.PaymentErrorType]string{
	entity.PaymentErrorInsufficientFunds:  "Add funds to your card or try a different card",
	entity.PaymentErrorCardDeclined:       "Try a different card or contact your bank",
	entity.PaymentErrorInvalidCardDetails: "Double-check your card number, expiry date, and CVC",
	entity.PaymentErrorRequires3DS:        "Complete the verification with your bank",
	entity.PaymentErrorNetwork:            "Check your connection and try again",
}

// CategorizeError maps a processor error onto the payment error taxonomy.
// The decline code is checked before the error code; anything unmatched is unknown_error.
func CategorizeError(raw *entity.ProcessorError) entity.CategorizedError {
	errType := resolveErrorType(raw)

	categorized := entity.CategorizedError{
		Type:        errType,
		UserMessage: userMessages[errType],
		Retryable:   retryableTypes[errType],
		RawError:    raw,
	}
	if action, ok := suggestedActions[errType]; ok {
		categorized.SuggestedAction = &action
	}
	return categorized
}

func resolveErrorType(raw *entity.ProcessorError) entity.PaymentErrorType {
	if raw == nil {
		return entity.PaymentErrorUnknown
	}

	if declineCode := strings.ToLower(raw.DeclineCode); declineCode != "" {
		if t, ok := declineCodeTypes[declineCode]; ok {
			return t
		}
	}

	if code := strings.ToLower(raw.Code); code != "" {
		if t, ok := errorCodeTypes[code]; ok {
			return t
		}
	}

	return entity.PaymentErrorUnknown
}

// UserMessageFor returns the user-facing message for a classified error type.
func UserMessageFor(t entity.PaymentErrorType) string {
	if msg, ok := userMessages[t]; ok {
		return msg
	}
	return userMessages[entity.PaymentErrorUnknown]
}
