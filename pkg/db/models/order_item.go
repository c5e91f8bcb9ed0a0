package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures the snapshot of each line within an order. Retail price
// is frozen at the moment the product was attached to the line, not a live
// reference into the catalog.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	RetailPrice decimal.Decimal `gorm:"column:retail_price;type:numeric(12,2);not null"`
	SaleAmount  decimal.Decimal `gorm:"column:sale_amount;type:numeric(12,2);not null"`
	Profit      decimal.Decimal `gorm:"column:profit;type:numeric(12,2);not null"`
	DeliveryFee decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	Note        *string         `gorm:"column:note"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
