package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentAttempt is one failed payment confirmation. Rows are append-only.
type PaymentAttempt struct {
	ID                    string         `gorm:"primaryKey;size:36" json:"id"`
	GoalID                *string        `gorm:"column:goal_id;size:64;index:idx_payment_attempts_goal_created,priority:1" json:"goal_id,omitempty"`
	UserID                string         `gorm:"column:user_id;size:64;not null;index:idx_payment_attempts_user_created,priority:1" json:"user_id"`
	StripePaymentIntentID *string        `gorm:"column:stripe_payment_intent_id;size:255" json:"stripe_payment_intent_id,omitempty"`
	ErrorCode             string         `gorm:"column:error_code;size:100;not null;default:'unknown'" json:"error_code"`
	ErrorType             string         `gorm:"column:error_type;size:50;not null" json:"error_type"`
	ErrorMessage          string         `gorm:"column:error_message;not null" json:"error_message"`
	RawStripeError        datatypes.JSON `gorm:"column:raw_stripe_error" json:"raw_stripe_error,omitempty"`
	Amount                int64          `gorm:"not null" json:"amount"`
	Currency              string         `gorm:"size:3;not null;default:'usd'" json:"currency"`
	CardLast4             *string        `gorm:"column:card_last4;size:4" json:"card_last4,omitempty"`
	CardBrand             *string        `gorm:"column:card_brand;size:50" json:"card_brand,omitempty"`
	CreatedAt             time.Time      `gorm:"autoCreateTime;index:idx_payment_attempts_goal_created,priority:2;index:idx_payment_attempts_user_created,priority:2" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}

// BeforeCreate assigns a UUID when the caller did not.
func (a *PaymentAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
