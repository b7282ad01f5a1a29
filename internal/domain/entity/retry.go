package entity

// RetryOutcome is the closed set of results a retry can end in.
type RetryOutcome string

const (
	RetryOutcomeSuccess            RetryOutcome = "success"
	RetryOutcomeSameError          RetryOutcome = "same_error"
	RetryOutcomeDifferentError     RetryOutcome = "different_error"
	RetryOutcomeTimeout            RetryOutcome = "timeout"
	RetryOutcomeMaxAttemptsReached RetryOutcome = "max_attempts_reached"
)

// DefaultCurrency is used when a retry request does not name one.
const DefaultCurrency = "usd"

// MaxRetryAttempts is the number of recorded failures after which a goal can no longer be retried.
const MaxRetryAttempts = 3

type RetryPaymentParams struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	GoalID          string `json:"goal_id,omitempty"`
	UserID          string `json:"-"`
	Amount          int64  `json:"amount" validate:"gte=0"`
	Currency        string `json:"currency,omitempty" validate:"omitempty,len=3"`
	CardLast4       string `json:"card_last4,omitempty" validate:"omitempty,len=4,numeric"`
	CardBrand       string `json:"card_brand,omitempty"`
}

// CurrencyOrDefault returns the request currency, or DefaultCurrency when unset.
func (p RetryPaymentParams) CurrencyOrDefault() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

type RetryPaymentResult struct {
	Success         bool             `json:"success"`
	Outcome         RetryOutcome     `json:"outcome"`
	PaymentIntentID string           `json:"payment_intent_id,omitempty"`
	ErrorType       PaymentErrorType `json:"error_type,omitempty"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	RawError        *ProcessorError  `json:"raw_error,omitempty"`
	RequiresAction  bool             `json:"requires_action,omitempty"`
	ClientSecret    string           `json:"client_secret,omitempty"`
	AttemptNumber   int              `json:"attempt_number,omitempty"`
}

// RetryEligibility answers whether a goal may be retried again.
type RetryEligibility struct {
	GoalID       string `json:"goal_id"`
	CanRetry     bool   `json:"can_retry"`
	AttemptCount int    `json:"attempt_count"`
	MaxAttempts  int    `json:"max_attempts"`
}
