package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

// Repository exposes catalog product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SearchActive returns active products whose name contains the term,
// case-insensitively, capped at limit.
func (r *Repository) SearchActive(ctx context.Context, term string, limit int) ([]models.CatalogProduct, error) {
	var rows []models.CatalogProduct
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("lower(name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns a single product row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogProduct, error) {
	var product models.CatalogProduct
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new catalog product.
func (r *Repository) Create(ctx context.Context, product *models.CatalogProduct) (*models.CatalogProduct, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies column updates to the product.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.CatalogProduct{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// List returns products for the admin view using cursor pagination.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.CatalogProduct, error) {
	query := r.db.WithContext(ctx).Model(&models.CatalogProduct{})

	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.CatalogProduct
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
