package repository

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentAttemptRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentAttemptRepository creates a new payment attempt repository
func NewPaymentAttemptRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentAttemptRepository {
	return &paymentAttemptRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a payment attempt
func (r *paymentAttemptRepository) Create(ctx context.Context, attempt *model.PaymentAttempt) error {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to create payment attempt: %w", err)
	}

	r.logger.Debug("Payment attempt created",
		zap.String("attempt_id", attempt.ID),
		zap.String("error_type", attempt.ErrorType))
	return nil
}

// ListByGoalID retrieves a goal's payment attempts, newest first
func (r *paymentAttemptRepository) ListByGoalID(ctx context.Context, goalID string) ([]model.PaymentAttempt, error) {
	var attempts []model.PaymentAttempt

	err := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment attempts for goal: %w", err)
	}

	return attempts, nil
}

// ListByUserID retrieves a user's most recent payment attempts
func (r *paymentAttemptRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]model.PaymentAttempt, error) {
	var attempts []model.PaymentAttempt

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment attempts for user: %w", err)
	}

	return attempts, nil
}

// CountByGoalID counts a goal's payment attempts
func (r *paymentAttemptRepository) CountByGoalID(ctx context.Context, goalID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.PaymentAttempt{}).
		Where("goal_id = ?", goalID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count payment attempts: %w", err)
	}

	return count, nil
}
