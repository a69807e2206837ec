package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/ferabensrl/mare-pedidos-backend/api/responses"
	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/config"
	pkgerrors "github.com/ferabensrl/mare-pedidos-backend/pkg/errors"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/redis"
)

const healthPingTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mare-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the catalog snapshot is loaded and,
// when a redis client is wired, redis answers a ping. Without redis the
// service still runs on the in-memory bridge, so readiness ignores it.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger, cat *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mare-Env", cfg.App.Env)

		checks := map[string]string{}
		ready := true

		if cat != nil && !cat.Loaded() {
			checks["catalog"] = "empty"
			ready = false
		} else {
			checks["catalog"] = "ok"
		}

		if redisP != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				ready = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !ready {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
