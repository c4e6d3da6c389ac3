package financials

import (
	"net/http"
	"time"

	"github.com/ssemujju/sokoyetu-backend/api/middleware"
	"github.com/ssemujju/sokoyetu-backend/api/responses"
	"github.com/ssemujju/sokoyetu-backend/api/validators"
	"github.com/ssemujju/sokoyetu-backend/internal/finance"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
	pkgerrors "github.com/ssemujju/sokoyetu-backend/pkg/errors"
	"github.com/ssemujju/sokoyetu-backend/pkg/logger"
	"github.com/ssemujju/sokoyetu-backend/pkg/metrics"
)

// SellerStatement serves a seller's financial statement. Sellers may only read
// their own statement; admins may read any seller's.
func SellerStatement(service finance.Service, reportMetrics *metrics.ReportMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		started := timeNowUTC()

		sellerID, err := validators.ParseQueryUUID(r, "sellerId")
		if err != nil {
			reportMetrics.IncFailure("seller_statement")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := middleware.RoleFromContext(ctx)
		if role != string(enums.UserRoleAdmin) && middleware.UserIDFromContext(ctx) != sellerID.String() {
			reportMetrics.IncFailure("seller_statement")
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "statement access denied"))
			return
		}

		window, err := resolveStatementWindow(r, timeNowUTC())
		if err != nil {
			reportMetrics.IncFailure("seller_statement")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		statement, err := service.SellerStatement(ctx, sellerID, window)
		if err != nil {
			reportMetrics.IncFailure("seller_statement")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reportMetrics.IncSuccess("seller_statement")
		reportMetrics.ObserveDuration("seller_statement", time.Since(started))
		responses.WriteSuccess(w, statement)
	}
}
