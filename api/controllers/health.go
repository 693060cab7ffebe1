package controllers

import (
	"net/http"

	"github.com/vaxtrackhq/vaxtrack-backend/api/responses"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/config"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
	pkgredis "github.com/vaxtrackhq/vaxtrack-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VaxTrack-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the store is reachable. Redis is optional
// infrastructure; when configured it participates in readiness, when absent
// it is skipped rather than failed.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VaxTrack-Env", cfg.App.Env)

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
