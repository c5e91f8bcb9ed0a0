package bankdetails

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
)

// Repository exposes bank details persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a bank details repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new bank details row. The operator_id unique index keeps
// this to one row per operator.
func (r *Repository) Create(ctx context.Context, details *models.BankDetails) (*models.BankDetails, error) {
	if err := r.db.WithContext(ctx).Create(details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// FindByOperator returns the bank details on file for the operator.
func (r *Repository) FindByOperator(ctx context.Context, operatorID uuid.UUID) (*models.BankDetails, error) {
	var details models.BankDetails
	err := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		First(&details).Error
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// Update applies column updates to the operator's bank details row.
func (r *Repository) Update(ctx context.Context, operatorID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.BankDetails{}).
		Where("operator_id = ?", operatorID).
		Updates(updates).Error
}

// ExistsForOperator reports whether the operator has bank details on file.
func (r *Repository) ExistsForOperator(ctx context.Context, operatorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BankDetails{}).
		Where("operator_id = ?", operatorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
