package withdrawals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/enums"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

// AdminRow pairs a withdrawal with the owning operator's shop name.
type AdminRow struct {
	models.Withdrawal
	ShopName string `gorm:"column:shop_name"`
}

// Repository provides data access for the commission ledger.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SumDeliveredProfit totals the profit of every delivered order for the
// operator. Only delivered orders earn commission.
func (r *Repository) SumDeliveredProfit(ctx context.Context, operatorID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("operator_id = ? AND status = ?", operatorID, enums.OrderStatusDelivered),
		"total_profit")
}

// SumByStatuses totals the operator's withdrawal amounts in the given states.
func (r *Repository) SumByStatuses(ctx context.Context, operatorID uuid.UUID, statuses []enums.WithdrawalStatus) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}
	return r.sum(r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("operator_id = ? AND status IN ?", operatorID, statuses),
		"amount")
}

func (r *Repository) sum(query *gorm.DB, column string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := query.Select("COALESCE(SUM(" + column + "), 0) AS total").Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *Repository) Create(ctx context.Context, withdrawal *models.Withdrawal) (*models.Withdrawal, error) {
	if err := r.db.WithContext(ctx).Create(withdrawal).Error; err != nil {
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) FindByID(ctx context.Context, withdrawalID uuid.UUID) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := r.db.WithContext(ctx).
		Where("id = ?", withdrawalID).
		First(&withdrawal).Error
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func (r *Repository) ListByOperator(ctx context.Context, operatorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Withdrawal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("operator_id = ?", operatorID)
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Withdrawal
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListAll returns withdrawals across operators with the shop name joined,
// optionally filtered by status.
func (r *Repository) ListAll(ctx context.Context, filters ListFilters, cursor *pagination.Cursor, limit int) ([]AdminRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Select("withdrawals.*, operators.shop_name AS shop_name").
		Joins("JOIN operators ON operators.id = withdrawals.operator_id")
	if filters.Status != nil {
		query = query.Where("withdrawals.status = ?", *filters.Status)
	}
	if cursor != nil {
		query = query.Where("(withdrawals.created_at < ?) OR (withdrawals.created_at = ? AND withdrawals.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []AdminRow
	err := query.
		Order("withdrawals.created_at DESC, withdrawals.id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// UpdateDecision records the admin's resolution and when it was taken.
func (r *Repository) UpdateDecision(ctx context.Context, withdrawalID uuid.UUID, status enums.WithdrawalStatus, decidedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("id = ?", withdrawalID).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": decidedAt,
		}).Error
}
