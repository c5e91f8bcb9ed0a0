package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kittohq/kitto-backend/pkg/enums"
)

// Withdrawal is a commission payout request raised by an operator.
type Withdrawal struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OperatorID uuid.UUID              `gorm:"column:operator_id;type:uuid;not null;index"`
	Amount     decimal.Decimal        `gorm:"column:amount;type:numeric(12,2);not null"`
	Status     enums.WithdrawalStatus `gorm:"column:status;not null;default:'pending'"`
	DecidedAt  *time.Time             `gorm:"column:decided_at"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
