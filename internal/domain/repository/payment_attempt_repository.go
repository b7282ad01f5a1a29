package repository

import (
	"context"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
)

// PaymentAttemptRepository defines the interface for the payment attempt ledger store
type PaymentAttemptRepository interface {
	Create(ctx context.Context, attempt *model.PaymentAttempt) error
	// ListByGoalID returns attempts for a goal, newest first.
	ListByGoalID(ctx context.Context, goalID string) ([]model.PaymentAttempt, error)
	// ListByUserID returns at most limit attempts for a user, newest first.
	ListByUserID(ctx context.Context, userID string, limit int) ([]model.PaymentAttempt, error)
	CountByGoalID(ctx context.Context, goalID string) (int64, error)
}

// GoalRepository defines the writes this service makes to goals
type GoalRepository interface {
	// UpdateStatus sets the goal status and bumps updated_at. Returns the affected row count.
	UpdateStatus(ctx context.Context, goalID string, status string) (int64, error)
}
