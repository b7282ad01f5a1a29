package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/provider"
	"go.uber.org/zap"
)

// DefaultRetryTimeout bounds a single retry round trip to the processor.
const DefaultRetryTimeout = 10 * time.Second

const (
	duplicateRetryMessage = "A retry for this payment is already in progress."
	maxAttemptsMessage    = "This payment has been retried too many times. Please use a different payment method."
	timeoutMessage        = "The payment is taking longer than expected. Please try again later."
)

// PaymentRetryService retries a failed payment against the processor.
type PaymentRetryService interface {
	// RetryPayment returns an error only when the processor is not configured.
	// Every payment failure is reported through the result.
	RetryPayment(ctx context.Context, params entity.RetryPaymentParams) (*entity.RetryPaymentResult, error)
	// CanRetryPayment reports whether the goal is still under the attempt ceiling.
	CanRetryPayment(ctx context.Context, goalID string) bool
}

// AttemptLedger is the part of PaymentAttemptService the retry flow depends on.
type AttemptLedger interface {
	CreatePaymentAttempt(ctx context.Context, params CreatePaymentAttemptParams) *model.PaymentAttempt
	GetPaymentAttemptCountForGoal(ctx context.Context, goalID string) int
}

// RetryOptions tunes the retry flow. Zero values fall back to the defaults.
type RetryOptions struct {
	MaxAttempts int
	Timeout     time.Duration
}

type stripeRetryService struct {
	provider    provider.PaymentIntentProvider
	ledger      AttemptLedger
	tracker     analytics.Tracker
	locks       *retryLocks
	maxAttempts int
	timeout     time.Duration
	logger      *zap.Logger
}

func NewPaymentRetryService(
	paymentProvider provider.PaymentIntentProvider,
	ledger AttemptLedger,
	tracker analytics.Tracker,
	opts RetryOptions,
	logger *zap.Logger,
) PaymentRetryService {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = entity.MaxRetryAttempts
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRetryTimeout
	}
	return &stripeRetryService{
		provider:    paymentProvider,
		ledger:      ledger,
		tracker:     tracker,
		locks:       newRetryLocks(),
		maxAttempts: opts.MaxAttempts,
		timeout:     opts.Timeout,
		logger:      logger,
	}
}

func (s *stripeRetryService) RetryPayment(ctx context.Context, params entity.RetryPaymentParams) (*entity.RetryPaymentResult, error) {
	log := s.logger.With(
		zap.String("payment_intent_id", params.PaymentIntentID),
		zap.String("goal_id", params.GoalID),
		zap.String("user_id", params.UserID),
	)

	if !s.locks.tryAcquire(params.PaymentIntentID) {
		log.Warn("Retry already in progress for payment intent")
		return &entity.RetryPaymentResult{
			Outcome:         entity.RetryOutcomeSameError,
			PaymentIntentID: params.PaymentIntentID,
			ErrorType:       entity.PaymentErrorDuplicateRetry,
			ErrorMessage:    duplicateRetryMessage,
		}, nil
	}
	defer s.locks.release(params.PaymentIntentID)

	attemptNumber := 1
	if params.GoalID != "" {
		count := s.ledger.GetPaymentAttemptCountForGoal(ctx, params.GoalID)
		if count >= s.maxAttempts {
			log.Info("Retry ceiling reached", zap.Int("attempt_count", count))
			return &entity.RetryPaymentResult{
				Outcome:         entity.RetryOutcomeMaxAttemptsReached,
				PaymentIntentID: params.PaymentIntentID,
				ErrorType:       entity.PaymentErrorMaxAttempts,
				ErrorMessage:    maxAttemptsMessage,
				AttemptNumber:   count,
			}, nil
		}
		attemptNumber = count + 1
	}

	startedAt := time.Now()
	s.tracker.Track(analytics.EventPaymentRetryStarted, analytics.Properties{
		"goal_id":           params.GoalID,
		"payment_intent_id": params.PaymentIntentID,
		"attempt_number":    attemptNumber,
		"amount":            params.Amount,
		"currency":          params.CurrencyOrDefault(),
	})

	result, err := s.raceTimeout(ctx, params)
	if err != nil {
		log.Error("Payment retry aborted", zap.Error(err))
		return nil, err
	}
	result.AttemptNumber = attemptNumber
	duration := time.Since(startedAt)

	props := analytics.Properties{
		"goal_id":           params.GoalID,
		"payment_intent_id": params.PaymentIntentID,
		"attempt_number":    attemptNumber,
		"outcome":           string(result.Outcome),
		"duration_ms":       duration.Milliseconds(),
	}
	if result.Success {
		s.tracker.Track(analytics.EventPaymentRetrySuccess, props)
	} else {
		props["error_type"] = string(result.ErrorType)
		if result.RawError != nil {
			props["error_code"] = result.RawError.Code
		}
		s.tracker.Track(analytics.EventPaymentRetryFailed, props)
	}

	log.Info("Payment retry finished",
		zap.String("outcome", string(result.Outcome)),
		zap.String("error_type", string(result.ErrorType)),
		zap.Int("attempt_number", attemptNumber),
		zap.Duration("duration", duration))

	return result, nil
}

func (s *stripeRetryService) CanRetryPayment(ctx context.Context, goalID string) bool {
	if goalID == "" {
		return true
	}
	return s.ledger.GetPaymentAttemptCountForGoal(ctx, goalID) < s.maxAttempts
}

type attemptOutcome struct {
	result *entity.RetryPaymentResult
	err    error
}

// raceTimeout runs the processor round trip and returns whichever finishes first: the
// round trip, the timer, or the caller's context. The round trip is not cancelled when
// it loses and may still record a ledger row afterwards.
func (s *stripeRetryService) raceTimeout(ctx context.Context, params entity.RetryPaymentParams) (*entity.RetryPaymentResult, error) {
	done := make(chan attemptOutcome, 1)
	attemptCtx := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Payment retry panicked",
					zap.String("payment_intent_id", params.PaymentIntentID),
					zap.Any("panic", r))
				done <- attemptOutcome{result: unknownFailure(params.PaymentIntentID)}
			}
		}()
		result, err := s.attempt(attemptCtx, params)
		done <- attemptOutcome{result: result, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.result, out.err
	case <-timer.C:
		s.logger.Warn("Payment retry timed out",
			zap.String("payment_intent_id", params.PaymentIntentID),
			zap.Duration("timeout", s.timeout))
	case <-ctx.Done():
		s.logger.Warn("Payment retry abandoned by caller",
			zap.String("payment_intent_id", params.PaymentIntentID),
			zap.Error(ctx.Err()))
	}

	return &entity.RetryPaymentResult{
		Outcome:         entity.RetryOutcomeTimeout,
		PaymentIntentID: params.PaymentIntentID,
		ErrorType:       entity.PaymentErrorTimeout,
		ErrorMessage:    timeoutMessage,
	}, nil
}

// attempt retrieves the intent to remember its last error, then confirms it.
func (s *stripeRetryService) attempt(ctx context.Context, params entity.RetryPaymentParams) (*entity.RetryPaymentResult, error) {
	current, err := s.provider.Retrieve(ctx, params.PaymentIntentID)
	if err != nil {
		return s.handleProviderError(ctx, params, nil, err)
	}
	previous := current.LastPaymentError

	confirmed, err := s.provider.Confirm(ctx, params.PaymentIntentID, params.PaymentMethodID)
	if err != nil {
		return s.handleProviderError(ctx, params, current, err)
	}

	switch confirmed.Status {
	case provider.PaymentIntentStatusRequiresAction:
		return &entity.RetryPaymentResult{
			Outcome:         entity.RetryOutcomeDifferentError,
			PaymentIntentID: params.PaymentIntentID,
			ErrorType:       entity.PaymentErrorRequires3DS,
			ErrorMessage:    UserMessageFor(entity.PaymentErrorRequires3DS),
			RequiresAction:  true,
			ClientSecret:    confirmed.ClientSecret,
		}, nil
	case provider.PaymentIntentStatusSucceeded:
		return &entity.RetryPaymentResult{
			Success:         true,
			Outcome:         entity.RetryOutcomeSuccess,
			PaymentIntentID: params.PaymentIntentID,
		}, nil
	}

	if confirmed.LastPaymentError == nil {
		s.logger.Warn("Payment intent not succeeded and carries no error",
			zap.String("payment_intent_id", params.PaymentIntentID),
			zap.String("status", string(confirmed.Status)))
		return unknownFailure(params.PaymentIntentID), nil
	}

	result := s.recordFailure(ctx, params, confirmed, confirmed.LastPaymentError)
	if confirmed.LastPaymentError.SameFailure(previous) {
		result.Outcome = entity.RetryOutcomeSameError
	}
	return result, nil
}

// handleProviderError turns a failed processor call into a result. Only a missing
// processor configuration is returned as an error.
func (s *stripeRetryService) handleProviderError(ctx context.Context, params entity.RetryPaymentParams, intent *provider.PaymentIntent, err error) (*entity.RetryPaymentResult, error) {
	if errors.Is(err, provider.ErrNotConfigured) {
		return nil, fmt.Errorf("payment retry unavailable: %w", err)
	}

	var processorErr *entity.ProcessorError
	if errors.As(err, &processorErr) {
		return s.recordFailure(ctx, params, intent, processorErr), nil
	}

	s.logger.Error("Payment processor call failed",
		zap.String("payment_intent_id", params.PaymentIntentID),
		zap.Error(err))
	return unknownFailure(params.PaymentIntentID), nil
}

// recordFailure classifies the processor error and writes it to the ledger.
func (s *stripeRetryService) recordFailure(ctx context.Context, params entity.RetryPaymentParams, intent *provider.PaymentIntent, processorErr *entity.ProcessorError) *entity.RetryPaymentResult {
	categorized := CategorizeError(processorErr)

	attempt := CreatePaymentAttemptParams{
		GoalID:          params.GoalID,
		UserID:          params.UserID,
		PaymentIntentID: params.PaymentIntentID,
		Error:           processorErr,
		Amount:          params.Amount,
		Currency:        params.CurrencyOrDefault(),
		CardLast4:       params.CardLast4,
		CardBrand:       params.CardBrand,
	}
	if intent != nil {
		if attempt.CardLast4 == "" {
			attempt.CardLast4 = intent.CardLast4
		}
		if attempt.CardBrand == "" {
			attempt.CardBrand = intent.CardBrand
		}
	}
	s.ledger.CreatePaymentAttempt(ctx, attempt)

	return &entity.RetryPaymentResult{
		Outcome:         entity.RetryOutcomeDifferentError,
		PaymentIntentID: params.PaymentIntentID,
		ErrorType:       categorized.Type,
		ErrorMessage:    categorized.UserMessage,
		RawError:        processorErr,
	}
}

func unknownFailure(paymentIntentID string) *entity.RetryPaymentResult {
	return &entity.RetryPaymentResult{
		Outcome:         entity.RetryOutcomeDifferentError,
		PaymentIntentID: paymentIntentID,
		ErrorType:       entity.PaymentErrorUnknown,
		ErrorMessage:    UserMessageFor(entity.PaymentErrorUnknown),
	}
}
