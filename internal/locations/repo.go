package locations

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
)

// Repository exposes district and city lookups.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a locations repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListDistricts returns every district ordered by name.
func (r *Repository) ListDistricts(ctx context.Context) ([]models.District, error) {
	var rows []models.District
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDistrictByID returns a single district row.
func (r *Repository) FindDistrictByID(ctx context.Context, id uuid.UUID) (*models.District, error) {
	var district models.District
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&district).Error
	if err != nil {
		return nil, err
	}
	return &district, nil
}

// ListCities returns cities within a district, optionally filtered by a
// case-insensitive substring match on the name.
func (r *Repository) ListCities(ctx context.Context, districtID uuid.UUID, search string, limit int) ([]models.City, error) {
	query := r.db.WithContext(ctx).
		Model(&models.City{}).
		Where("district_id = ?", districtID)

	if search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var rows []models.City
	err := query.Order("name ASC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCityExact returns the canonical city matching the name exactly,
// ignoring case.
func (r *Repository) FindCityExact(ctx context.Context, districtID uuid.UUID, name string) (*models.City, error) {
	var city models.City
	err := r.db.WithContext(ctx).
		Where("district_id = ? AND lower(name) = ?", districtID, strings.ToLower(name)).
		First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}
