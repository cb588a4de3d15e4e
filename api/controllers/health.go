package controllers

import (
	"net/http"

	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/pkg/config"
	"github.com/Sum1ght/schand/pkg/db"
	"github.com/Sum1ght/schand/pkg/logger"
	"github.com/Sum1ght/schand/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Schand-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Schand-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if dbP == nil {
			checks["db"] = "not configured"
			healthy = false
		} else if err := dbP.Ping(ctx); err != nil {
			logg.Error(ctx, "db ping failed", err)
			checks["db"] = "unreachable"
			healthy = false
		}

		if redisP == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := redisP.Ping(ctx); err != nil {
			logg.Error(ctx, "redis ping failed", err)
			checks["redis"] = "unreachable"
			healthy = false
		}

		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, checks)
			return
		}
		responses.WriteSuccess(w, checks)
	}
}
