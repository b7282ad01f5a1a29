package usecase

import (
	"context"
	"encoding/json"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	defaultAttemptListLimit = 50
	unknownErrorCode        = "unknown"
)

// CreatePaymentAttemptParams describes one failed payment confirmation
type CreatePaymentAttemptParams struct {
	GoalID          string
	UserID          string
	PaymentIntentID string
	Error           *entity.ProcessorError
	Amount          int64
	Currency        string
	CardLast4       string
	CardBrand       string
}

// PaymentAttemptService is the attempt ledger. Bookkeeping is best effort: every method
// logs store failures and returns a zero value instead of an error.
type PaymentAttemptService struct {
	attemptRepo repository.PaymentAttemptRepository
	goalRepo    repository.GoalRepository
	tracker     analytics.Tracker
	logger      *zap.Logger
}

func NewPaymentAttemptService(
	attemptRepo repository.PaymentAttemptRepository,
	goalRepo repository.GoalRepository,
	tracker analytics.Tracker,
	logger *zap.Logger,
) *PaymentAttemptService {
	return &PaymentAttemptService{
		attemptRepo: attemptRepo,
		goalRepo:    goalRepo,
		tracker:     tracker,
		logger:      logger,
	}
}

// CreatePaymentAttempt classifies the error and records the attempt. It returns nil when
// the insert fails, in which case no payment_failed event is emitted.
func (s *PaymentAttemptService) CreatePaymentAttempt(ctx context.Context, params CreatePaymentAttemptParams) *model.PaymentAttempt {
	categorized := CategorizeError(params.Error)

	currency := params.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	attempt := &model.PaymentAttempt{
		GoalID:                optionalString(params.GoalID),
		UserID:                params.UserID,
		StripePaymentIntentID: optionalString(params.PaymentIntentID),
		ErrorCode:             unknownErrorCode,
		ErrorType:             string(categorized.Type),
		ErrorMessage:          categorized.UserMessage,
		Amount:                params.Amount,
		Currency:              currency,
		CardLast4:             optionalString(params.CardLast4),
		CardBrand:             optionalString(params.CardBrand),
	}
	if params.Error != nil {
		if params.Error.Code != "" {
			attempt.ErrorCode = params.Error.Code
		}
		raw, err := json.Marshal(params.Error)
		if err != nil {
			s.logger.Warn("Failed to serialize processor error", zap.Error(err))
		} else {
			attempt.RawStripeError = datatypes.JSON(raw)
		}
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		s.logger.Error("Failed to create payment attempt",
			zap.String("user_id", params.UserID),
			zap.String("goal_id", params.GoalID),
			zap.String("payment_intent_id", params.PaymentIntentID),
			zap.String("error_type", attempt.ErrorType),
			zap.Error(err))
		return nil
	}

	props := analytics.Properties{
		"goal_id":        params.GoalID,
		"error_code":     attempt.ErrorCode,
		"error_type":     attempt.ErrorType,
		"error_message":  attempt.ErrorMessage,
		"amount":         params.Amount,
		"amount_display": entity.FormatAmount(params.Amount, currency),
		"currency":       currency,
		"retryable":      categorized.Retryable,
		"card_brand":     params.CardBrand,
	}
	if categorized.SuggestedAction != nil {
		props["suggested_action"] = *categorized.SuggestedAction
	}
	s.tracker.Track(analytics.EventPaymentFailed, props)

	s.logger.Info("Payment attempt recorded",
		zap.String("attempt_id", attempt.ID),
		zap.String("goal_id", params.GoalID),
		zap.String("error_type", attempt.ErrorType))

	return attempt
}

// MarkGoalPaymentFailed sets the goal status to payment_failed.
func (s *PaymentAttemptService) MarkGoalPaymentFailed(ctx context.Context, goalID string) bool {
	affected, err := s.goalRepo.UpdateStatus(ctx, goalID, model.GoalStatusPaymentFailed)
	if err != nil {
		s.logger.Error("Failed to mark goal as payment failed",
			zap.String("goal_id", goalID),
			zap.Error(err))
		return false
	}
	if affected == 0 {
		s.logger.Warn("No goal updated when marking payment failed", zap.String("goal_id", goalID))
	}
	return true
}

// GetPaymentAttemptsForGoal returns the goal's attempts, newest first.
func (s *PaymentAttemptService) GetPaymentAttemptsForGoal(ctx context.Context, goalID string) []model.PaymentAttempt {
	attempts, err := s.attemptRepo.ListByGoalID(ctx, goalID)
	if err != nil {
		s.logger.Error("Failed to get payment attempts for goal",
			zap.String("goal_id", goalID),
			zap.Error(err))
		return []model.PaymentAttempt{}
	}
	if attempts == nil {
		return []model.PaymentAttempt{}
	}
	return attempts
}

// GetPaymentAttemptsForUser returns up to limit attempts for the user, newest first.
// A non-positive limit means 50.
func (s *PaymentAttemptService) GetPaymentAttemptsForUser(ctx context.Context, userID string, limit int) []model.PaymentAttempt {
	if limit <= 0 {
		limit = defaultAttemptListLimit
	}

	attempts, err := s.attemptRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		s.logger.Error("Failed to get payment attempts for user",
			zap.String("user_id", userID),
			zap.Int("limit", limit),
			zap.Error(err))
		return []model.PaymentAttempt{}
	}
	if attempts == nil {
		return []model.PaymentAttempt{}
	}
	return attempts
}

// GetPaymentAttemptCountForGoal returns 0 when the count cannot be read.
func (s *PaymentAttemptService) GetPaymentAttemptCountForGoal(ctx context.Context, goalID string) int {
	count, err := s.attemptRepo.CountByGoalID(ctx, goalID)
	if err != nil {
		s.logger.Error("Failed to count payment attempts",
			zap.String("goal_id", goalID),
			zap.Error(err))
		return 0
	}
	return int(count)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
