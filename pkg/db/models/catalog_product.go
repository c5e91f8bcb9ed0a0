package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogProduct is a shared-catalog item operators resell.
type CatalogProduct struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	RetailPrice   decimal.Decimal `gorm:"column:retail_price;type:numeric(12,2);not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	// No gorm-side default: gorm skips zero values for defaulted
	// columns, which would flip an explicitly inactive product back to
	// active on insert. The column default in the migration covers
	// rows created outside the app.
	IsActive bool `gorm:"column:is_active;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string {
	return "catalog_products"
}
