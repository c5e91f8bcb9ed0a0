package models

import (
	"time"

	"github.com/google/uuid"
)

// BankDetails holds the payout destination for one operator. At most one row
// exists per operator, enforced by the unique index on operator_id.
type BankDetails struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OperatorID        uuid.UUID `gorm:"column:operator_id;type:uuid;not null;uniqueIndex:idx_bank_details_operator"`
	BankName          string    `gorm:"column:bank_name;not null"`
	AccountHolderName string    `gorm:"column:account_holder_name;not null"`
	AccountNumber     string    `gorm:"column:account_number;not null"`
	BranchName        string    `gorm:"column:branch_name;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BankDetails) TableName() string {
	return "bank_details"
}
