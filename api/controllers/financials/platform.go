package financials

import (
	"net/http"
	"time"

	"github.com/ssemujju/sokoyetu-backend/api/responses"
	"github.com/ssemujju/sokoyetu-backend/internal/finance"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
	"github.com/ssemujju/sokoyetu-backend/pkg/metrics"
)

// PlatformFinancials serves the admin financial dashboard aggregates.
func PlatformFinancials(service finance.Service, reportMetrics *metrics.ReportMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		started := timeNowUTC()

		window, err := resolveStatementWindow(r, timeNowUTC())
		if err != nil {
			reportMetrics.IncFailure("platform_financials")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		financials, err := service.PlatformFinancials(ctx, window)
		if err != nil {
			reportMetrics.IncFailure("platform_financials")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reportMetrics.IncSuccess("platform_financials")
		reportMetrics.ObserveDuration("platform_financials", time.Since(started))
		responses.WriteSuccess(w, financials)
	}
}
