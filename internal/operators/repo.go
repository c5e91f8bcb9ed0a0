package operators

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

// Repository exposes operator persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an operators repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new operator row.
func (r *Repository) Create(ctx context.Context, operator *models.Operator) (*models.Operator, error) {
	if err := r.db.WithContext(ctx).Create(operator).Error; err != nil {
		return nil, err
	}
	return operator, nil
}

// FindByID returns a single operator row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	var operator models.Operator
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

// FindByMobile returns the operator registered under the mobile number.
func (r *Repository) FindByMobile(ctx context.Context, mobile string) (*models.Operator, error) {
	var operator models.Operator
	err := r.db.WithContext(ctx).
		Where("mobile_number = ?", strings.TrimSpace(mobile)).
		First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

// Update applies column updates to the operator.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Operator{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// List returns operators for the admin view using cursor pagination.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Operator, error) {
	query := r.db.WithContext(ctx).Model(&models.Operator{})

	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Operator
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the operator row; dependent rows cascade in Postgres.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Operator{}).Error
}
