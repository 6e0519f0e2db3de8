package run

import (
	"fmt"
	"time"

	"github.com/shiftline/payroll-backend-go/internal/domain/run"
)

// Period is a resolved pay period: tenant-local calendar dates plus the
// absolute instants they map to in the run's timezone.
type Period struct {
	StartDate time.Time // midnight local, date component is the period start
	EndDate   time.Time // midnight local, inclusive end date
	Timezone  string
	Location  *time.Location
}

// ResolvePeriod computes the inclusive period covered by a run starting
// on startDate: 7 days for weekly, 14 for biweekly. The dates are
// calendar dates in the tenant's timezone, never the server's.
func ResolvePeriod(payrollType run.PayrollType, startDate string, timezone string) (Period, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Period{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return Period{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	end := start.AddDate(0, 0, payrollType.PeriodDays()-1)

	return Period{
		StartDate: start,
		EndDate:   end,
		Timezone:  timezone,
		Location:  loc,
	}, nil
}

// Bounds returns the half-open instant range [from, to) that contains
// every clock-in belonging to the period: local midnight on the start
// date up to local midnight after the end date. AddDate keeps the
// boundaries on calendar midnights across DST transitions.
func (p Period) Bounds() (from, to time.Time) {
	return p.StartDate, p.EndDate.AddDate(0, 0, 1)
}

// StartDateString / EndDateString render the period dates the way they
// are stored, as plain calendar dates.
func (p Period) StartDateString() string {
	return p.StartDate.Format("2006-01-02")
}

func (p Period) EndDateString() string {
	return p.EndDate.Format("2006-01-02")
}
