package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssemujju/sokoyetu-backend/api/controllers"
	"github.com/ssemujju/sokoyetu-backend/api/controllers/financials"
	"github.com/ssemujju/sokoyetu-backend/api/middleware"
	"github.com/ssemujju/sokoyetu-backend/internal/finance"
	"github.com/ssemujju/sokoyetu-backend/pkg/config"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
	"github.com/ssemujju/sokoyetu-backend/pkg/metrics"
	pkgredis "github.com/ssemujju/sokoyetu-backend/pkg/redis"
)

// NewRouter wires the HTTP surface. Everything under /api requires a bearer
// token; the reporting endpoints are additionally rate limited per client IP.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *pkgredis.Client,
	financeService finance.Service,
	reportMetrics *metrics.ReportMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	reportPolicy := middleware.NewReportRateLimitPolicy(
		"reports",
		cfg.ReportLimit.Window,
		cfg.ReportLimit.IPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAnyRole(logg, string(enums.UserRoleSeller), string(enums.UserRoleAdmin)))
		r.With(middleware.ReportRateLimit(reportPolicy, redisClient, logg)).
			Get("/statements", financials.SellerStatement(financeService, reportMetrics, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.With(middleware.ReportRateLimit(reportPolicy, redisClient, logg)).
			Get("/financials", financials.PlatformFinancials(financeService, reportMetrics, logg))
		r.With(middleware.ReportRateLimit(reportPolicy, redisClient, logg)).
			Get("/stats", financials.AdminStats(financeService, reportMetrics, logg))
	})

	return r
}
