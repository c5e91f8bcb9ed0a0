package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/internal/locations"
	"github.com/kittohq/kitto-backend/pkg/config"
	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/enums"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	pkgpagination "github.com/kittohq/kitto-backend/pkg/pagination"
)

const maxOrderItems = 50

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogProduct, error)
}

type locationResolver interface {
	GetDistrict(ctx context.Context, districtID uuid.UUID) (*locations.DistrictView, error)
	ResolveCity(ctx context.Context, districtID uuid.UUID, name string) (*locations.CityView, error)
}

// Service exposes order submission, listing, and the admin review workflow.
type Service interface {
	SubmitOrder(ctx context.Context, operatorID uuid.UUID, input SubmitOrderInput) (*OrderView, error)
	ListOperatorOrders(ctx context.Context, operatorID uuid.UUID, filters ListFilters, params pkgpagination.Params) (*OrderList, error)
	GetOrder(ctx context.Context, operatorID, orderID uuid.UUID) (*OrderView, error)
	AdminListOrders(ctx context.Context, filters ListFilters, params pkgpagination.Params) (*OrderList, error)
	AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*OrderView, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	catalog     productCatalog
	locations   locationResolver
	deliveryFee decimal.Decimal
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo      Repository
	Tx        txRunner
	Catalog   productCatalog
	Locations locationResolver
	Orders    config.OrdersConfig
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if params.Locations == nil {
		return nil, fmt.Errorf("location resolver required")
	}

	fee, err := decimal.NewFromString(params.Orders.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("invalid delivery fee %q: %w", params.Orders.DeliveryFee, err)
	}
	if fee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	return &service{
		repo:        params.Repo,
		tx:          params.Tx,
		catalog:     params.Catalog,
		locations:   params.Locations,
		deliveryFee: fee,
	}, nil
}

func (s *service) SubmitOrder(ctx context.Context, operatorID uuid.UUID, input SubmitOrderInput) (*OrderView, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if strings.TrimSpace(input.CustomerAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_address is required")
	}
	if !input.OrderSource.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order_source")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	if len(input.Items) > maxOrderItems {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d items per order", maxOrderItems))
	}
	if input.DueDate != nil && input.DueDate.Before(time.Now().UTC().Truncate(24*time.Hour)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "due_date must not be in the past")
	}

	district, err := s.locations.GetDistrict(ctx, input.DistrictID)
	if err != nil {
		return nil, err
	}
	city, err := s.locations.ResolveCity(ctx, input.DistrictID, input.CityName)
	if err != nil {
		return nil, err
	}

	items, totalPayable, totalProfit, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OperatorID:       operatorID,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerAddress:  strings.TrimSpace(input.CustomerAddress),
		CustomerCity:     city.Name,
		CustomerDistrict: district.Name,
		DueDate:          input.DueDate,
		OrderSource:      input.OrderSource,
		PaymentMethod:    enums.PaymentMethodCashOnDelivery,
		Note:             input.Note,
		TotalPayable:     totalPayable,
		TotalProfit:      totalProfit,
		Status:           enums.OrderStatusPending,
	}

	// Header and lines commit together; a failed line insert rolls the
	// header back.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		for i := range items {
			items[i].OrderID = created.ID
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	view := toOrderView(order)
	return &view, nil
}

func (s *service) buildItems(ctx context.Context, inputs []SubmitOrderItemInput) ([]models.OrderItem, decimal.Decimal, decimal.Decimal, error) {
	var (
		items        = make([]models.OrderItem, 0, len(inputs))
		totalPayable = decimal.Zero
		totalProfit  = decimal.Zero
	)

	for i, line := range inputs {
		if line.ProductID == uuid.Nil {
			return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product_id is required", i))
		}
		if line.Quantity < 1 {
			return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be at least 1", i))
		}

		product, err := s.catalog.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product not found", i))
			}
			return nil, decimal.Zero, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
		}
		if !product.IsActive {
			return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product is inactive", i))
		}
		if line.SaleAmount.LessThan(product.RetailPrice) {
			return nil, decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: sale_amount must be at least the retail price", i))
		}

		profit := line.SaleAmount.Sub(product.RetailPrice)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			RetailPrice: product.RetailPrice,
			SaleAmount:  line.SaleAmount,
			Profit:      profit,
			DeliveryFee: s.deliveryFee,
			Note:        line.Note,
		})

		totalPayable = totalPayable.Add(line.SaleAmount).Add(s.deliveryFee)
		totalProfit = totalProfit.Add(profit)
	}

	return items, totalPayable, totalProfit, nil
}

func (s *service) ListOperatorOrders(ctx context.Context, operatorID uuid.UUID, filters ListFilters, params pkgpagination.Params) (*OrderList, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}
	return s.listOrders(ctx, filters, params, func(cursor *pkgpagination.Cursor, limit int) ([]models.Order, error) {
		return s.repo.ListByOperator(ctx, operatorID, filters, cursor, limit)
	})
}

func (s *service) AdminListOrders(ctx context.Context, filters ListFilters, params pkgpagination.Params) (*OrderList, error) {
	return s.listOrders(ctx, filters, params, func(cursor *pkgpagination.Cursor, limit int) ([]models.Order, error) {
		return s.repo.ListAll(ctx, filters, cursor, limit)
	})
}

func (s *service) listOrders(ctx context.Context, filters ListFilters, params pkgpagination.Params, fetch func(*pkgpagination.Cursor, int) ([]models.Order, error)) (*OrderList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	var cursor *pkgpagination.Cursor
	if params.Cursor != "" {
		parsed, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, err := fetch(cursor, pkgpagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	views := make([]OrderView, len(rows))
	for i := range rows {
		views[i] = toOrderView(&rows[i])
	}

	return &OrderList{
		Orders:     views,
		NextCursor: nextCursor,
	}, nil
}

func (s *service) GetOrder(ctx context.Context, operatorID, orderID uuid.UUID) (*OrderView, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OperatorID != operatorID {
		// Hide other operators' orders entirely.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	view := toOrderView(order)
	return &view, nil
}

func (s *service) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := toOrderView(order)
	return &view, nil
}

func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*OrderView, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		view := toOrderView(order)
		return &view, nil
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = target
	view := toOrderView(order)
	return &view, nil
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func toOrderView(order *models.Order) OrderView {
	items := make([]OrderItemView, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			RetailPrice: item.RetailPrice,
			SaleAmount:  item.SaleAmount,
			Profit:      item.Profit,
			DeliveryFee: item.DeliveryFee,
			Note:        item.Note,
		}
	}

	return OrderView{
		ID:               order.ID,
		OperatorID:       order.OperatorID,
		CustomerName:     order.CustomerName,
		CustomerAddress:  order.CustomerAddress,
		CustomerCity:     order.CustomerCity,
		CustomerDistrict: order.CustomerDistrict,
		DueDate:          order.DueDate,
		OrderSource:      order.OrderSource,
		PaymentMethod:    order.PaymentMethod,
		Note:             order.Note,
		TotalPayable:     order.TotalPayable,
		TotalProfit:      order.TotalProfit,
		Status:           order.Status,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}
