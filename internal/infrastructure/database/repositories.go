package database

import (
	"github.com/wekeepgrowing/payment-recovery/internal/adapter/repository"
	domainRepo "github.com/wekeepgrowing/payment-recovery/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	PaymentAttempt domainRepo.PaymentAttemptRepository
	Goal           domainRepo.GoalRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		PaymentAttempt: repository.NewPaymentAttemptRepository(db, logger),
		Goal:           repository.NewGoalRepository(db),
	}
}
