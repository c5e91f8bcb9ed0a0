package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS catalog_products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  retail_price NUMERIC NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS catalog_products`).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, active bool) *models.CatalogProduct {
	t.Helper()

	product := &models.CatalogProduct{
		ID:          uuid.New(),
		Name:        name,
		RetailPrice: decimal.NewFromInt(price),
		IsActive:    active,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestSearchActiveExcludesInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Saree Blue", 1200, true)
	inactive := seedProduct(t, db, "Saree Red", 1500, false)
	seedProduct(t, db, "Kurta", 900, true)

	// The inactive flag must survive the insert itself, not just the
	// search filter.
	stored, err := repo.FindByID(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	rows, err := repo.SearchActive(ctx, "saree", 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Saree Blue", rows[0].Name)
}

func TestSearchActiveHonorsLimit(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Saree A", "Saree B", "Saree C", "Saree D", "Saree E", "Saree F"} {
		seedProduct(t, db, name, 1000, true)
	}

	rows, err := repo.SearchActive(ctx, "saree", 5)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestUpdateAndFind(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Saree Blue", 1200, true)

	require.NoError(t, repo.Update(ctx, product.ID, map[string]any{
		"is_active":      false,
		"stock_quantity": 3,
	}))

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, 3, got.StockQuantity)
	assert.True(t, got.RetailPrice.Equal(decimal.NewFromInt(1200)))
}

func TestListPaginates(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		product := &models.CatalogProduct{
			ID:          uuid.New(),
			Name:        "Item",
			RetailPrice: decimal.NewFromInt(100),
			IsActive:    true,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(product).Error)
		ids = append(ids, product.ID)
	}

	first, err := repo.List(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, ids[2], first[0].ID)

	rest, err := repo.List(ctx, &pagination.Cursor{CreatedAt: first[1].CreatedAt, ID: first[1].ID}, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)
}
