package enums

import "fmt"

// StatementPeriod selects the reporting window for financial statements.
type StatementPeriod string

const (
	StatementPeriodAll     StatementPeriod = "all"
	StatementPeriodMonth   StatementPeriod = "month"
	StatementPeriodQuarter StatementPeriod = "quarter"
	StatementPeriodYear    StatementPeriod = "year"
)

var validStatementPeriods = []StatementPeriod{
	StatementPeriodAll,
	StatementPeriodMonth,
	StatementPeriodQuarter,
	StatementPeriodYear,
}

// String implements fmt.Stringer.
func (s StatementPeriod) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StatementPeriod.
func (s StatementPeriod) IsValid() bool {
	for _, candidate := range validStatementPeriods {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStatementPeriod converts raw input into a StatementPeriod.
// Empty input defaults to the unrestricted window.
func ParseStatementPeriod(value string) (StatementPeriod, error) {
	if value == "" {
		return StatementPeriodAll, nil
	}
	for _, candidate := range validStatementPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid statement period %q", value)
}
