package finance

import (
	"time"

	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// Window is the resolved [Start, End] reporting range for a statement.
type Window struct {
	Start  time.Time
	End    time.Time
	Period enums.StatementPeriod
}

// ResolveWindow maps a statement period onto a concrete [start, now] range.
// An explicit startDate/endDate pair overrides the period-derived range when
// both are present.
func ResolveWindow(period enums.StatementPeriod, startDate, endDate *time.Time, now time.Time) Window {
	now = now.UTC()

	if startDate != nil && endDate != nil {
		return Window{Start: startDate.UTC(), End: endDate.UTC(), Period: period}
	}

	var start time.Time
	switch period {
	case enums.StatementPeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case enums.StatementPeriodQuarter:
		quarterStart := time.Month(((int(now.Month())-1)/3)*3 + 1)
		start = time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, time.UTC)
	case enums.StatementPeriodYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		start = time.Unix(0, 0).UTC()
	}
	return Window{Start: start, End: now, Period: period}
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	ts = ts.UTC()
	return !ts.Before(w.Start) && !ts.After(w.End)
}
