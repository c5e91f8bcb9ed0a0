package controllers

import (
	"net/http"

	"github.com/kittohq/kitto-backend/api/responses"
	"github.com/kittohq/kitto-backend/api/validators"
	"github.com/kittohq/kitto-backend/internal/operators"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	"github.com/kittohq/kitto-backend/pkg/logger"
)

// AuthRegister creates an operator account and returns a signed access token.
func AuthRegister(svc operators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "operators service unavailable"))
			return
		}

		var req operators.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Register(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// AuthLogin verifies credentials and returns a signed access token.
func AuthLogin(svc operators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "operators service unavailable"))
			return
		}

		var req operators.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
