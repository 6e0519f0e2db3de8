package timesheet

import "time"

// TimeRecord is one clock-in/clock-out pair owned by the time tracking
// collaborator. Read-only to the payroll engine. A nil ClockOutAt means
// the record is still open.
type TimeRecord struct {
	ID           string
	TenantID     string
	EmployeeID   string
	ClockInAt    time.Time
	ClockOutAt   *time.Time
	BreakMinutes int
}
