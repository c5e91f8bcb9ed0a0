package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kittohq/kitto-backend/pkg/enums"
)

// Order is one customer transaction placed by an operator. The payable and
// profit aggregates are computed once at submission from the order's items and
// are not recomputed when items change later.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OperatorID       uuid.UUID           `gorm:"column:operator_id;type:uuid;not null;index"`
	CustomerName     string              `gorm:"column:customer_name;not null"`
	CustomerAddress  string              `gorm:"column:customer_address;not null"`
	CustomerCity     string              `gorm:"column:customer_city;not null"`
	CustomerDistrict string              `gorm:"column:customer_district;not null"`
	DueDate          *time.Time          `gorm:"column:due_date"`
	OrderSource      enums.OrderSource   `gorm:"column:order_source;not null"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;not null;default:'cash_on_delivery'"`
	Note             *string             `gorm:"column:note"`
	TotalPayable     decimal.Decimal     `gorm:"column:total_payable;type:numeric(12,2);not null"`
	TotalProfit      decimal.Decimal     `gorm:"column:total_profit;type:numeric(12,2);not null"`
	Status           enums.OrderStatus   `gorm:"column:status;not null;default:'pending'"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
