package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kittohq/kitto-backend/pkg/enums"
)

// SubmitOrderItemInput is one line of the submission command.
type SubmitOrderItemInput struct {
	ProductID  uuid.UUID       `json:"product_id" validate:"required"`
	Quantity   int             `json:"quantity" validate:"required,min=1"`
	SaleAmount decimal.Decimal `json:"sale_amount" validate:"required"`
	Note       *string         `json:"note,omitempty"`
}

// SubmitOrderInput is the full order submission command. City and district are
// resolved against the location hierarchy before anything is persisted.
type SubmitOrderInput struct {
	CustomerName    string                 `json:"customer_name" validate:"required"`
	CustomerAddress string                 `json:"customer_address" validate:"required"`
	DistrictID      uuid.UUID              `json:"district_id" validate:"required"`
	CityName        string                 `json:"city_name" validate:"required"`
	DueDate         *time.Time             `json:"due_date,omitempty"`
	OrderSource     enums.OrderSource      `json:"order_source" validate:"required"`
	Note            *string                `json:"note,omitempty"`
	Items           []SubmitOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderItemView is the line shape returned to clients.
type OrderItemView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	RetailPrice decimal.Decimal `json:"retail_price"`
	SaleAmount  decimal.Decimal `json:"sale_amount"`
	Profit      decimal.Decimal `json:"profit"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Note        *string         `json:"note,omitempty"`
}

// OrderView is the order shape returned to clients.
type OrderView struct {
	ID               uuid.UUID           `json:"id"`
	OperatorID       uuid.UUID           `json:"operator_id"`
	CustomerName     string              `json:"customer_name"`
	CustomerAddress  string              `json:"customer_address"`
	CustomerCity     string              `json:"customer_city"`
	CustomerDistrict string              `json:"customer_district"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	OrderSource      enums.OrderSource   `json:"order_source"`
	PaymentMethod    enums.PaymentMethod `json:"payment_method"`
	Note             *string             `json:"note,omitempty"`
	TotalPayable     decimal.Decimal     `json:"total_payable"`
	TotalProfit      decimal.Decimal     `json:"total_profit"`
	Status           enums.OrderStatus   `json:"status"`
	Items            []OrderItemView     `json:"items,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ListFilters describe the inputs supported by the order lists.
type ListFilters struct {
	Status *enums.OrderStatus
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderView `json:"orders"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
