package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductView is the catalog product shape returned to operators.
type ProductView struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateProductInput carries the fields admins supply when adding a product.
type CreateProductInput struct {
	Name          string
	RetailPrice   decimal.Decimal
	StockQuantity int
	IsActive      *bool
}

// UpdateProductInput carries partial updates; nil fields are untouched.
type UpdateProductInput struct {
	Name          *string
	RetailPrice   *decimal.Decimal
	StockQuantity *int
	IsActive      *bool
}

// ProductList wraps paginated admin listings plus the next cursor.
type ProductList struct {
	Products   []ProductView `json:"products"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
