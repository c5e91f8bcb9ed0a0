package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	pkgpagination "github.com/kittohq/kitto-backend/pkg/pagination"
)

const (
	// minSearchLen mirrors the storefront contract: shorter terms return
	// nothing without touching storage.
	minSearchLen = 2
	// maxSearchResults keeps the picker small.
	maxSearchResults = 5
)

type catalogRepository interface {
	SearchActive(ctx context.Context, term string, limit int) ([]models.CatalogProduct, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CatalogProduct, error)
	Create(ctx context.Context, product *models.CatalogProduct) (*models.CatalogProduct, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	List(ctx context.Context, cursor *pkgpagination.Cursor, limit int) ([]models.CatalogProduct, error)
}

// Service exposes catalog search for operators and product management for admins.
type Service interface {
	Search(ctx context.Context, term string) ([]ProductView, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductView, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductView, error)
	ListProducts(ctx context.Context, params pkgpagination.Params) (*ProductList, error)
}

type service struct {
	repo catalogRepository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Search(ctx context.Context, term string) ([]ProductView, error) {
	term = strings.TrimSpace(term)
	if len(term) < minSearchLen {
		return []ProductView{}, nil
	}

	rows, err := s.repo.SearchActive(ctx, term, maxSearchResults)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search catalog")
	}

	views := make([]ProductView, len(rows))
	for i, row := range rows {
		views[i] = toProductView(row)
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}

	view := toProductView(*product)
	return &view, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.RetailPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retail_price must not be negative")
	}
	if input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity must not be negative")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	product := &models.CatalogProduct{
		Name:          name,
		RetailPrice:   input.RetailPrice,
		StockQuantity: input.StockQuantity,
		IsActive:      active,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	view := toProductView(*created)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		updates["name"] = name
	}
	if input.RetailPrice != nil {
		if input.RetailPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "retail_price must not be negative")
		}
		updates["retail_price"] = *input.RetailPrice
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity must not be negative")
		}
		updates["stock_quantity"] = *input.StockQuantity
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}

	view := toProductView(*updated)
	return &view, nil
}

func (s *service) ListProducts(ctx context.Context, params pkgpagination.Params) (*ProductList, error) {
	limit := pkgpagination.NormalizeLimit(params.Limit)

	var cursor *pkgpagination.Cursor
	if params.Cursor != "" {
		parsed, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, err := s.repo.List(ctx, cursor, pkgpagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	views := make([]ProductView, len(rows))
	for i, row := range rows {
		views[i] = toProductView(row)
	}

	return &ProductList{
		Products:   views,
		NextCursor: nextCursor,
	}, nil
}

func toProductView(product models.CatalogProduct) ProductView {
	return ProductView{
		ID:            product.ID,
		Name:          product.Name,
		RetailPrice:   product.RetailPrice,
		StockQuantity: product.StockQuantity,
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
	}
}
