package financials

import (
	"net/http"
	"time"

	"github.com/ssemujju/sokoyetu-backend/api/responses"
	"github.com/ssemujju/sokoyetu-backend/internal/finance"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
	"github.com/ssemujju/sokoyetu-backend/pkg/metrics"
)

// AdminStats serves the admin overview counters.
func AdminStats(service finance.Service, reportMetrics *metrics.ReportMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		started := timeNowUTC()

		stats, err := service.AdminStats(ctx)
		if err != nil {
			reportMetrics.IncFailure("admin_stats")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reportMetrics.IncSuccess("admin_stats")
		reportMetrics.ObserveDuration("admin_stats", time.Since(started))
		responses.WriteSuccess(w, stats)
	}
}
