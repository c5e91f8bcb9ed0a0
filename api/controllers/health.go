package controllers

import (
	"context"
	"net/http"

	"github.com/kittohq/kitto-backend/api/responses"
	"github.com/kittohq/kitto-backend/pkg/config"
	"github.com/kittohq/kitto-backend/pkg/db"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	"github.com/kittohq/kitto-backend/pkg/logger"
	pkgredis "github.com/kittohq/kitto-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kitto-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kitto-Env", cfg.App.Env)

		checks := []struct {
			name string
			ping func(context.Context) error
		}{
			{"database", pingFunc(database)},
			{"redis", pingFunc(cache)},
		}
		for _, check := range checks {
			if check.ping == nil {
				continue
			}
			if err := check.ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

func pingFunc(p interface{ Ping(context.Context) error }) func(context.Context) error {
	if p == nil {
		return nil
	}
	return p.Ping
}
