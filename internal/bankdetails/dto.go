package bankdetails

import (
	"time"

	"github.com/google/uuid"
)

// UpsertRequest carries the fields operators supply for payout banking.
type UpsertRequest struct {
	BankName          string `json:"bank_name" validate:"required"`
	AccountHolderName string `json:"account_holder_name" validate:"required"`
	AccountNumber     string `json:"account_number" validate:"required"`
	BranchName        string `json:"branch_name" validate:"required"`
}

// BankDetailsView is the bank details shape returned to clients.
type BankDetailsView struct {
	ID                uuid.UUID `json:"id"`
	OperatorID        uuid.UUID `json:"operator_id"`
	BankName          string    `json:"bank_name"`
	AccountHolderName string    `json:"account_holder_name"`
	AccountNumber     string    `json:"account_number"`
	BranchName        string    `json:"branch_name"`
	UpdatedAt         time.Time `json:"updated_at"`
}
