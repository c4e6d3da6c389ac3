package financials

import (
	"net/http"
	"strings"
	"time"

	"github.com/ssemujju/sokoyetu-backend/api/validators"
	"github.com/ssemujju/sokoyetu-backend/internal/finance"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
	pkgerrors "github.com/ssemujju/sokoyetu-backend/pkg/errors"
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

const queryDateLayout = "2006-01-02"

type statementQuery struct {
	Period    string `query:"period" validate:"omitempty,oneof=all month quarter year"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

func resolveStatementWindow(r *http.Request, now time.Time) (finance.Window, error) {
	query := statementQuery{
		Period:    strings.TrimSpace(r.URL.Query().Get("period")),
		StartDate: strings.TrimSpace(r.URL.Query().Get("startDate")),
		EndDate:   strings.TrimSpace(r.URL.Query().Get("endDate")),
	}
	if err := validators.ValidateStruct(query); err != nil {
		return finance.Window{}, err
	}

	period, err := enums.ParseStatementPeriod(query.Period)
	if err != nil {
		return finance.Window{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid period")
	}

	var startDate, endDate *time.Time
	if query.StartDate != "" {
		parsed, err := time.Parse(queryDateLayout, query.StartDate)
		if err != nil {
			return finance.Window{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid startDate")
		}
		startDate = &parsed
	}
	if query.EndDate != "" {
		parsed, err := time.Parse(queryDateLayout, query.EndDate)
		if err != nil {
			return finance.Window{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid endDate")
		}
		endDate = &parsed
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return finance.Window{}, pkgerrors.New(pkgerrors.CodeValidation, "endDate must not be before startDate")
	}

	return finance.ResolveWindow(period, startDate, endDate, now), nil
}
