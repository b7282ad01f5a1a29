package model

import "time"

// GoalStatusPaymentFailed is the only goal status this service writes.
const GoalStatusPaymentFailed = "payment_failed"

// Goal is the user's commitment a payment funds. The table is owned by the goals
// service; only Status and UpdatedAt are written here.
type Goal struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"column:user_id;size:64;index" json:"user_id"`
	Status    string    `gorm:"size:50" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Goal) TableName() string {
	return "goals"
}
