package withdrawals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/enums"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

type withdrawalsRepository interface {
	SumDeliveredProfit(ctx context.Context, operatorID uuid.UUID) (decimal.Decimal, error)
	SumByStatuses(ctx context.Context, operatorID uuid.UUID, statuses []enums.WithdrawalStatus) (decimal.Decimal, error)
	Create(ctx context.Context, withdrawal *models.Withdrawal) (*models.Withdrawal, error)
	FindByID(ctx context.Context, withdrawalID uuid.UUID) (*models.Withdrawal, error)
	ListByOperator(ctx context.Context, operatorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Withdrawal, error)
	ListAll(ctx context.Context, filters ListFilters, cursor *pagination.Cursor, limit int) ([]AdminRow, error)
	UpdateDecision(ctx context.Context, withdrawalID uuid.UUID, status enums.WithdrawalStatus, decidedAt time.Time) error
}

type bankDetailsChecker interface {
	ExistsForOperator(ctx context.Context, operatorID uuid.UUID) (bool, error)
}

// Service exposes the commission ledger and the payout workflow.
type Service interface {
	Summary(ctx context.Context, operatorID uuid.UUID) (*SummaryView, error)
	RequestWithdrawal(ctx context.Context, operatorID uuid.UUID, input RequestWithdrawalInput) (*WithdrawalView, error)
	ListWithdrawals(ctx context.Context, operatorID uuid.UUID, params pagination.Params) (*WithdrawalList, error)
	AdminListWithdrawals(ctx context.Context, filters ListFilters, params pagination.Params) (*AdminWithdrawalList, error)
	AdminDecide(ctx context.Context, withdrawalID uuid.UUID, target enums.WithdrawalStatus) (*WithdrawalView, error)
}

type service struct {
	repo        withdrawalsRepository
	bankDetails bankDetailsChecker
}

// NewService builds a withdrawals service with the required dependencies.
func NewService(repo withdrawalsRepository, bankDetails bankDetailsChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("withdrawals repository required")
	}
	if bankDetails == nil {
		return nil, fmt.Errorf("bank details checker required")
	}
	return &service{repo: repo, bankDetails: bankDetails}, nil
}

// Summary recomputes the ledger from the underlying rows on every call
// instead of maintaining a balance column.
func (s *service) Summary(ctx context.Context, operatorID uuid.UUID) (*SummaryView, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}

	earned, err := s.repo.SumDeliveredProfit(ctx, operatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum delivered profit")
	}
	pending, err := s.repo.SumByStatuses(ctx, operatorID, []enums.WithdrawalStatus{enums.WithdrawalStatusPending})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pending withdrawals")
	}
	completed, err := s.repo.SumByStatuses(ctx, operatorID, []enums.WithdrawalStatus{
		enums.WithdrawalStatusApproved,
		enums.WithdrawalStatusCompleted,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum completed withdrawals")
	}

	return &SummaryView{
		TotalEarned:          earned,
		PendingWithdrawals:   pending,
		CompletedWithdrawals: completed,
		AvailableBalance:     earned.Sub(completed).Sub(pending),
	}, nil
}

func (s *service) RequestWithdrawal(ctx context.Context, operatorID uuid.UUID, input RequestWithdrawalInput) (*WithdrawalView, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	hasBank, err := s.bankDetails.ExistsForOperator(ctx, operatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check bank details")
	}
	if !hasBank {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank details required before requesting a withdrawal")
	}

	summary, err := s.Summary(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(summary.AvailableBalance) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("amount exceeds available balance of %s", summary.AvailableBalance))
	}

	created, err := s.repo.Create(ctx, &models.Withdrawal{
		OperatorID: operatorID,
		Amount:     input.Amount,
		Status:     enums.WithdrawalStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create withdrawal")
	}

	view := toWithdrawalView(created)
	return &view, nil
}

func (s *service) ListWithdrawals(ctx context.Context, operatorID uuid.UUID, params pagination.Params) (*WithdrawalList, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := parseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByOperator(ctx, operatorID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list withdrawals")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	views := make([]WithdrawalView, len(rows))
	for i := range rows {
		views[i] = toWithdrawalView(&rows[i])
	}
	return &WithdrawalList{Withdrawals: views, NextCursor: nextCursor}, nil
}

func (s *service) AdminListWithdrawals(ctx context.Context, filters ListFilters, params pagination.Params) (*AdminWithdrawalList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := parseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAll(ctx, filters, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list withdrawals")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	views := make([]AdminWithdrawalView, len(rows))
	for i := range rows {
		views[i] = AdminWithdrawalView{
			WithdrawalView: toWithdrawalView(&rows[i].Withdrawal),
			ShopName:       rows[i].ShopName,
		}
	}
	return &AdminWithdrawalList{Withdrawals: views, NextCursor: nextCursor}, nil
}

func (s *service) AdminDecide(ctx context.Context, withdrawalID uuid.UUID, target enums.WithdrawalStatus) (*WithdrawalView, error) {
	if withdrawalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "withdrawal id required")
	}
	if !target.IsValid() || target == enums.WithdrawalStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid decision")
	}

	withdrawal, err := s.repo.FindByID(ctx, withdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "withdrawal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load withdrawal")
	}

	switch {
	case withdrawal.Status == enums.WithdrawalStatusPending &&
		(target == enums.WithdrawalStatusApproved || target == enums.WithdrawalStatusRejected):
	case withdrawal.Status == enums.WithdrawalStatusApproved &&
		target == enums.WithdrawalStatusCompleted:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move withdrawal from %s to %s", withdrawal.Status, target))
	}

	if target == enums.WithdrawalStatusApproved {
		hasBank, err := s.bankDetails.ExistsForOperator(ctx, withdrawal.OperatorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check bank details")
		}
		if !hasBank {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "operator has no bank details on file")
		}
	}

	decidedAt := time.Now().UTC()
	if err := s.repo.UpdateDecision(ctx, withdrawalID, target, decidedAt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record decision")
	}

	withdrawal.Status = target
	withdrawal.DecidedAt = &decidedAt
	view := toWithdrawalView(withdrawal)
	return &view, nil
}

func parseCursor(raw string) (*pagination.Cursor, error) {
	if raw == "" {
		return nil, nil
	}
	cursor, err := pagination.ParseCursor(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	return cursor, nil
}

func toWithdrawalView(w *models.Withdrawal) WithdrawalView {
	return WithdrawalView{
		ID:         w.ID,
		OperatorID: w.OperatorID,
		Amount:     w.Amount,
		Status:     w.Status,
		DecidedAt:  w.DecidedAt,
		CreatedAt:  w.CreatedAt,
	}
}
