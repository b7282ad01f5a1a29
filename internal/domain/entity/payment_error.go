package entity

import "fmt"

// ProcessorError is the error object returned by the payment processor on a failed
// charge or confirmation. Empty fields mean the processor did not send them.
type ProcessorError struct {
	Type          string `json:"type,omitempty"`
	Code          string `json:"code,omitempty"`
	DeclineCode   string `json:"decline_code,omitempty"`
	Message       string `json:"message,omitempty"`
	Param         string `json:"param,omitempty"`
	Charge        string `json:"charge,omitempty"`
	PaymentIntent string `json:"payment_intent,omitempty"`
}

func (e *ProcessorError) Error() string {
	switch {
	case e.DeclineCode != "":
		return fmt.Sprintf("%s (%s/%s): %s", e.Type, e.Code, e.DeclineCode, e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s (%s): %s", e.Type, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// SameFailure reports whether both errors carry the same (code, decline_code) pair.
// A nil error never matches.
func (e *ProcessorError) SameFailure(other *ProcessorError) bool {
	if e == nil || other == nil {
		return false
	}
	return e.Code == other.Code && e.DeclineCode == other.DeclineCode
}

// PaymentErrorType is the stable category a processor error is mapped to.
type PaymentErrorType string

const (
	PaymentErrorInsufficientFunds  PaymentErrorType = "insufficient_funds"
	PaymentErrorCardDeclined       PaymentErrorType = "card_declined"
	PaymentErrorInvalidCardDetails PaymentErrorType = "invalid_card_details"
	PaymentErrorExpiredCard        PaymentErrorType = "expired_card"
	PaymentErrorRequires3DS        PaymentErrorType = "requires_3ds"
	PaymentErrorNetwork            PaymentErrorType = "network_error"
	PaymentErrorUnknown            PaymentErrorType = "unknown_error"
)

// Produced by the retry flow itself, never by classification.
const (
	PaymentErrorDuplicateRetry       PaymentErrorType = "duplicate_retry"
	PaymentErrorMaxAttempts          PaymentErrorType = "max_attempts"
	PaymentErrorTimeout              PaymentErrorType = "timeout"
	PaymentErrorPlatformNotSupported PaymentErrorType = "platform_not_supported"
)

// ClassifiedErrorTypes lists every type CategorizeError can return.
var ClassifiedErrorTypes = []PaymentErrorType{
	PaymentErrorInsufficientFunds,
	PaymentErrorCardDeclined,
	PaymentErrorInvalidCardDetails,
	PaymentErrorExpiredCard,
	PaymentErrorRequires3DS,
	PaymentErrorNetwork,
	PaymentErrorUnknown,
}

// CategorizedError is a processor error resolved to a category with user-facing copy.
type CategorizedError struct {
	Type            PaymentErrorType `json:"type"`
	UserMessage     string           `json:"user_message"`
	Retryable       bool             `json:"retryable"`
	SuggestedAction *string          `json:"suggested_action,omitempty"`
	RawError        *ProcessorError  `json:"raw_error,omitempty"`
}
