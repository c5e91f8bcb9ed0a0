package withdrawals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/enums"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

type stubWithdrawalsRepo struct {
	earned    decimal.Decimal
	sums      map[enums.WithdrawalStatus]decimal.Decimal
	created   *models.Withdrawal
	found     *models.Withdrawal
	decidedTo *enums.WithdrawalStatus
}

func (s *stubWithdrawalsRepo) SumDeliveredProfit(ctx context.Context, operatorID uuid.UUID) (decimal.Decimal, error) {
	return s.earned, nil
}

func (s *stubWithdrawalsRepo) SumByStatuses(ctx context.Context, operatorID uuid.UUID, statuses []enums.WithdrawalStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, status := range statuses {
		total = total.Add(s.sums[status])
	}
	return total, nil
}

func (s *stubWithdrawalsRepo) Create(ctx context.Context, withdrawal *models.Withdrawal) (*models.Withdrawal, error) {
	withdrawal.ID = uuid.New()
	withdrawal.CreatedAt = time.Now().UTC()
	s.created = withdrawal
	return withdrawal, nil
}

func (s *stubWithdrawalsRepo) FindByID(ctx context.Context, withdrawalID uuid.UUID) (*models.Withdrawal, error) {
	if s.found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.found, nil
}

func (s *stubWithdrawalsRepo) ListByOperator(ctx context.Context, operatorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Withdrawal, error) {
	return nil, nil
}

func (s *stubWithdrawalsRepo) ListAll(ctx context.Context, filters ListFilters, cursor *pagination.Cursor, limit int) ([]AdminRow, error) {
	return nil, nil
}

func (s *stubWithdrawalsRepo) UpdateDecision(ctx context.Context, withdrawalID uuid.UUID, status enums.WithdrawalStatus, decidedAt time.Time) error {
	s.decidedTo = &status
	return nil
}

type stubBankChecker struct {
	exists bool
}

func (s *stubBankChecker) ExistsForOperator(ctx context.Context, operatorID uuid.UUID) (bool, error) {
	return s.exists, nil
}

func newWithdrawalsFixture(t *testing.T, earned int64) (*stubWithdrawalsRepo, *stubBankChecker, Service) {
	t.Helper()
	repo := &stubWithdrawalsRepo{
		earned: decimal.NewFromInt(earned),
		sums:   map[enums.WithdrawalStatus]decimal.Decimal{},
	}
	bank := &stubBankChecker{exists: true}
	svc, err := NewService(repo, bank)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return repo, bank, svc
}

func TestSummaryBalanceFormula(t *testing.T) {
	repo, _, svc := newWithdrawalsFixture(t, 5000)
	repo.sums[enums.WithdrawalStatusPending] = decimal.NewFromInt(1000)
	repo.sums[enums.WithdrawalStatusApproved] = decimal.NewFromInt(500)
	repo.sums[enums.WithdrawalStatusCompleted] = decimal.NewFromInt(1500)
	// rejected never reduces the balance
	repo.sums[enums.WithdrawalStatusRejected] = decimal.NewFromInt(9999)

	summary, err := svc.Summary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.TotalEarned.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected earned 5000, got %s", summary.TotalEarned)
	}
	if !summary.PendingWithdrawals.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected pending 1000, got %s", summary.PendingWithdrawals)
	}
	if !summary.CompletedWithdrawals.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected completed 2000, got %s", summary.CompletedWithdrawals)
	}
	if !summary.AvailableBalance.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected available 2000, got %s", summary.AvailableBalance)
	}
}

func TestRequestWithdrawalWithinBalance(t *testing.T) {
	repo, _, svc := newWithdrawalsFixture(t, 3000)

	view, err := svc.RequestWithdrawal(context.Background(), uuid.New(), RequestWithdrawalInput{
		Amount: decimal.NewFromInt(3000),
	})
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}
	if view.Status != enums.WithdrawalStatusPending {
		t.Fatalf("expected pending, got %s", view.Status)
	}
	if repo.created == nil || !repo.created.Amount.Equal(decimal.NewFromInt(3000)) {
		t.Fatal("expected a persisted pending request")
	}
}

func TestRequestWithdrawalExceedsBalance(t *testing.T) {
	repo, _, svc := newWithdrawalsFixture(t, 3000)
	repo.sums[enums.WithdrawalStatusPending] = decimal.NewFromInt(500)

	_, err := svc.RequestWithdrawal(context.Background(), uuid.New(), RequestWithdrawalInput{
		Amount: decimal.NewFromInt(2501),
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("nothing should be persisted")
	}
}

func TestRequestWithdrawalRejectsNonPositiveAmount(t *testing.T) {
	_, _, svc := newWithdrawalsFixture(t, 3000)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.RequestWithdrawal(context.Background(), uuid.New(), RequestWithdrawalInput{Amount: amount})
		if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("amount %s: expected validation error, got %v", amount, err)
		}
	}
}

func TestRequestWithdrawalRequiresBankDetails(t *testing.T) {
	_, bank, svc := newWithdrawalsFixture(t, 3000)
	bank.exists = false

	_, err := svc.RequestWithdrawal(context.Background(), uuid.New(), RequestWithdrawalInput{
		Amount: decimal.NewFromInt(100),
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminDecideFromPending(t *testing.T) {
	repo, _, svc := newWithdrawalsFixture(t, 0)
	repo.found = &models.Withdrawal{
		ID:         uuid.New(),
		OperatorID: uuid.New(),
		Amount:     decimal.NewFromInt(100),
		Status:     enums.WithdrawalStatusPending,
	}

	view, err := svc.AdminDecide(context.Background(), repo.found.ID, enums.WithdrawalStatusApproved)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if view.Status != enums.WithdrawalStatusApproved {
		t.Fatalf("expected approved, got %s", view.Status)
	}
	if view.DecidedAt == nil {
		t.Fatal("expected decided_at to be set")
	}
	if repo.decidedTo == nil || *repo.decidedTo != enums.WithdrawalStatusApproved {
		t.Fatal("decision not written")
	}
}

func TestAdminDecideRejectsDoubleDecision(t *testing.T) {
	repo, _, svc := newWithdrawalsFixture(t, 0)
	repo.found = &models.Withdrawal{
		ID:     uuid.New(),
		Status: enums.WithdrawalStatusRejected,
	}

	_, err := svc.AdminDecide(context.Background(), repo.found.ID, enums.WithdrawalStatusApproved)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAdminDecideApprovedToCompleted(t *testing.T) {
	repo, _, svc := newWithdrawalsFixture(t, 0)
	repo.found = &models.Withdrawal{
		ID:     uuid.New(),
		Status: enums.WithdrawalStatusApproved,
	}

	view, err := svc.AdminDecide(context.Background(), repo.found.ID, enums.WithdrawalStatusCompleted)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if view.Status != enums.WithdrawalStatusCompleted {
		t.Fatalf("expected completed, got %s", view.Status)
	}
}

func TestAdminDecideApproveNeedsBankDetails(t *testing.T) {
	repo, bank, svc := newWithdrawalsFixture(t, 0)
	bank.exists = false
	repo.found = &models.Withdrawal{
		ID:     uuid.New(),
		Status: enums.WithdrawalStatusPending,
	}

	_, err := svc.AdminDecide(context.Background(), repo.found.ID, enums.WithdrawalStatusApproved)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	// rejecting needs no bank details
	if _, err := svc.AdminDecide(context.Background(), repo.found.ID, enums.WithdrawalStatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
}

func TestAdminDecideUnknownWithdrawal(t *testing.T) {
	_, _, svc := newWithdrawalsFixture(t, 0)

	_, err := svc.AdminDecide(context.Background(), uuid.New(), enums.WithdrawalStatusRejected)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
