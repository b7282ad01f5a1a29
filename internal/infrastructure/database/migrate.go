package database

import (
	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates the payment_attempts table and its indexes. The goals table is
// owned by the goals service and is not migrated here.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(&model.PaymentAttempt{}); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes that GORM tags can't express
func createCustomIndexes(db *gorm.DB) error {
	// Webhook intake and support lookups go by payment intent
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_payment_attempts_intent ON payment_attempts (stripe_payment_intent_id) WHERE stripe_payment_intent_id IS NOT NULL`).Error
}
