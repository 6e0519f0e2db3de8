package timesheet

import (
	"context"
	"time"
)

// TimeRecordRepository is the read-only query surface consumed from the
// time tracking collaborator.
type TimeRecordRepository interface {
	// ListForPeriod returns every record for the employee whose clock-in
	// falls within [from, to), open records included so the aggregator
	// can count them as exceptions.
	ListForPeriod(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]TimeRecord, error)
}
