package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db/models"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
)

const (
	defaultCityLimit = 10
	maxCityLimit     = 20
)

type locationsRepository interface {
	ListDistricts(ctx context.Context) ([]models.District, error)
	FindDistrictByID(ctx context.Context, id uuid.UUID) (*models.District, error)
	ListCities(ctx context.Context, districtID uuid.UUID, search string, limit int) ([]models.City, error)
	FindCityExact(ctx context.Context, districtID uuid.UUID, name string) (*models.City, error)
}

// Service exposes the district/city lookups backing address entry.
type Service interface {
	ListDistricts(ctx context.Context) ([]DistrictView, error)
	ListCities(ctx context.Context, districtID uuid.UUID, search string, limit int) ([]CityView, error)
	GetDistrict(ctx context.Context, districtID uuid.UUID) (*DistrictView, error)
	ResolveCity(ctx context.Context, districtID uuid.UUID, name string) (*CityView, error)
}

type service struct {
	repo locationsRepository
}

// NewService builds a locations service backed by the provided repository.
func NewService(repo locationsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListDistricts(ctx context.Context) ([]DistrictView, error) {
	rows, err := s.repo.ListDistricts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list districts")
	}

	views := make([]DistrictView, len(rows))
	for i, row := range rows {
		views[i] = DistrictView{ID: row.ID, Name: row.Name}
	}
	return views, nil
}

func (s *service) ListCities(ctx context.Context, districtID uuid.UUID, search string, limit int) ([]CityView, error) {
	if districtID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "district id required")
	}

	if limit <= 0 {
		limit = defaultCityLimit
	}
	if limit > maxCityLimit {
		limit = maxCityLimit
	}

	rows, err := s.repo.ListCities(ctx, districtID, strings.TrimSpace(search), limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cities")
	}

	views := make([]CityView, len(rows))
	for i, row := range rows {
		views[i] = CityView{ID: row.ID, DistrictID: row.DistrictID, Name: row.Name}
	}
	return views, nil
}

func (s *service) GetDistrict(ctx context.Context, districtID uuid.UUID) (*DistrictView, error) {
	if districtID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "district id required")
	}

	district, err := s.repo.FindDistrictByID(ctx, districtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "district not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup district")
	}

	return &DistrictView{ID: district.ID, Name: district.Name}, nil
}

func (s *service) ResolveCity(ctx context.Context, districtID uuid.UUID, name string) (*CityView, error) {
	if districtID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "district id required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city name required")
	}

	city, err := s.repo.FindCityExact(ctx, districtID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "city not found in district")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve city")
	}

	return &CityView{ID: city.ID, DistrictID: city.DistrictID, Name: city.Name}, nil
}
