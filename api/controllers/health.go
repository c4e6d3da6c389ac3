package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/ssemujju/sokoyetu-backend/api/responses"
	"github.com/ssemujju/sokoyetu-backend/pkg/config"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
)

const readinessProbeTimeout = 2 * time.Second

// Pinger is the dependency surface the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SokoYetu-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger, redisPinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessProbeTimeout)
		defer cancel()

		w.Header().Set("X-SokoYetu-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		checks["database"] = probe(ctx, logg, "database", dbPinger, &healthy)
		checks["redis"] = probe(ctx, logg, "redis", redisPinger, &healthy)

		status := "ready"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}

func probe(ctx context.Context, logg *logger.Logger, name string, pinger Pinger, healthy *bool) string {
	if pinger == nil {
		*healthy = false
		return "unconfigured"
	}
	if err := pinger.Ping(ctx); err != nil {
		*healthy = false
		if logg != nil {
			logg.Error(logg.WithField(ctx, "dependency", name), "health.check.failed", err)
		}
		return "down"
	}
	return "ok"
}
