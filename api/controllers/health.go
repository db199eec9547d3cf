package controllers

import (
	"net/http"

	"github.com/angelmondragon/lotlister-backend/api/responses"
	"github.com/angelmondragon/lotlister-backend/pkg/config"
	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/lotlister-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LotLister-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources so load balancers stop routing to an
// instance that lost its backends.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LotLister-Env", cfg.App.Env)

		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true
		if database == nil || database.Ping(r.Context()) != nil {
			checks["database"] = "unavailable"
			healthy = false
		}
		if cache == nil || cache.Ping(r.Context()) != nil {
			checks["redis"] = "unavailable"
			healthy = false
		}

		if !healthy {
			if logg != nil {
				logg.Warn(r.Context(), "health.ready_check_failed")
			}
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, checks)
			return
		}
		responses.WriteSuccess(w, checks)
	}
}
