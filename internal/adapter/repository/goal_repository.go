package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/repository"
	"gorm.io/gorm"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

// UpdateStatus sets a goal's status and bumps updated_at
func (r *goalRepository) UpdateStatus(ctx context.Context, goalID string, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Goal{}).
		Where("id = ?", goalID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update goal status: %w", result.Error)
	}

	return result.RowsAffected, nil
}
