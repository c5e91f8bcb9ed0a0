package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kittohq/kitto-backend/api/responses"
	"github.com/kittohq/kitto-backend/api/validators"
	"github.com/kittohq/kitto-backend/internal/locations"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	"github.com/kittohq/kitto-backend/pkg/logger"
)

func DistrictList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		districts, err := svc.ListDistricts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, districts)
	}
}

// CityList suggests cities inside a district, optionally filtered by a
// partial name typed so far.
func CityList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawDistrict := strings.TrimSpace(r.URL.Query().Get("district_id"))
		if rawDistrict == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "district_id is required"))
			return
		}
		districtID, err := uuid.Parse(rawDistrict)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid district_id"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cities, err := svc.ListCities(r.Context(), districtID, r.URL.Query().Get("q"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cities)
	}
}
