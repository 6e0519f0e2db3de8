package run

import (
	"fmt"
	"time"

	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/domain/timesheet"
)

// WeekKey identifies an ISO calendar week.
type WeekKey struct {
	Year int
	Week int
}

// EmployeeAggregate is the reduction of one employee's time records for
// a period: paid minutes bucketed per ISO week, plus the audit trail of
// what was counted and what was excluded.
type EmployeeAggregate struct {
	MinutesByWeek map[WeekKey]int
	Exceptions    int
	Details       run.LineItemDetails
}

// TotalMinutes sums the paid minutes across all weeks.
func (a EmployeeAggregate) TotalMinutes() int {
	total := 0
	for _, m := range a.MinutesByWeek {
		total += m
	}
	return total
}

const (
	reasonOpenRecord       = "open record: no clock-out"
	reasonNegativeDuration = "clock-out before clock-in"
)

// AggregateRecords reduces an employee's raw records to per-week paid
// minutes. Open records and negative durations never fail the run; they
// are excluded and counted as exceptions. Worked minutes per record are
// clock-out minus clock-in minus break, floored at zero. The record's
// ISO week is the week of its clock-in in the run's timezone.
func AggregateRecords(records []timesheet.TimeRecord, loc *time.Location) EmployeeAggregate {
	agg := EmployeeAggregate{
		MinutesByWeek: make(map[WeekKey]int),
	}

	for _, rec := range records {
		detail := run.RecordDetail{
			RecordID:     rec.ID,
			ClockInAt:    rec.ClockInAt.In(loc).Format(time.RFC3339),
			BreakMinutes: rec.BreakMinutes,
		}

		if rec.ClockOutAt == nil {
			detail.Excluded = true
			detail.Reason = reasonOpenRecord
			agg.Exceptions++
			agg.Details.Records = append(agg.Details.Records, detail)
			continue
		}

		detail.ClockOutAt = rec.ClockOutAt.In(loc).Format(time.RFC3339)

		duration := rec.ClockOutAt.Sub(rec.ClockInAt)
		if duration < 0 {
			detail.Excluded = true
			detail.Reason = reasonNegativeDuration
			agg.Exceptions++
			agg.Details.Records = append(agg.Details.Records, detail)
			continue
		}

		worked := int(duration.Minutes()) - rec.BreakMinutes
		if worked < 0 {
			worked = 0
		}
		detail.WorkedMinutes = worked

		year, week := rec.ClockInAt.In(loc).ISOWeek()
		agg.MinutesByWeek[WeekKey{Year: year, Week: week}] += worked
		agg.Details.Records = append(agg.Details.Records, detail)
	}

	if agg.Exceptions > 0 {
		agg.Details.Notes = append(agg.Details.Notes,
			fmt.Sprintf("%d record(s) excluded from paid time", agg.Exceptions))
	}

	return agg
}
