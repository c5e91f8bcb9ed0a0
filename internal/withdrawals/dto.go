package withdrawals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kittohq/kitto-backend/pkg/enums"
)

// SummaryView is the commission ledger snapshot for one operator.
type SummaryView struct {
	TotalEarned          decimal.Decimal `json:"total_earned"`
	PendingWithdrawals   decimal.Decimal `json:"pending_withdrawals"`
	CompletedWithdrawals decimal.Decimal `json:"completed_withdrawals"`
	AvailableBalance     decimal.Decimal `json:"available_balance"`
}

// RequestWithdrawalInput carries the operator's payout request.
type RequestWithdrawalInput struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// WithdrawalView is the API shape of a withdrawal request.
type WithdrawalView struct {
	ID         uuid.UUID              `json:"id"`
	OperatorID uuid.UUID              `json:"operator_id"`
	Amount     decimal.Decimal        `json:"amount"`
	Status     enums.WithdrawalStatus `json:"status"`
	DecidedAt  *time.Time             `json:"decided_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// AdminWithdrawalView adds the operator's shop name for the back office list.
type AdminWithdrawalView struct {
	WithdrawalView
	ShopName string `json:"shop_name"`
}

// WithdrawalList is a cursor-paginated page of an operator's requests.
type WithdrawalList struct {
	Withdrawals []WithdrawalView `json:"withdrawals"`
	NextCursor  string           `json:"next_cursor,omitempty"`
}

// AdminWithdrawalList is a cursor-paginated page for the back office.
type AdminWithdrawalList struct {
	Withdrawals []AdminWithdrawalView `json:"withdrawals"`
	NextCursor  string                `json:"next_cursor,omitempty"`
}

// ListFilters narrows withdrawal listings.
type ListFilters struct {
	Status *enums.WithdrawalStatus
}
