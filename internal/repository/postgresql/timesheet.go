package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftline/payroll-backend-go/internal/domain/timesheet"
	"github.com/shiftline/payroll-backend-go/internal/pkg/database"
)

type timeRecordRepository struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) timesheet.TimeRecordRepository {
	return &timeRecordRepository{db: db}
}

func (repo *timeRecordRepository) ListForPeriod(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]timesheet.TimeRecord, error) {
	q := GetQuerier(ctx, repo.db)

	// Membership is decided by the clock-in instant alone; open records
	// come back too so the aggregator can flag them.
	query := `
		SELECT id, tenant_id, employee_id, clock_in_at, clock_out_at, break_minutes
		FROM time_records
		WHERE tenant_id = $1 AND employee_id = $2
		  AND clock_in_at >= $3 AND clock_in_at < $4
		ORDER BY clock_in_at
	`

	rows, err := q.Query(ctx, query, tenantID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	var records []timesheet.TimeRecord
	for rows.Next() {
		var r timesheet.TimeRecord
		err := rows.Scan(&r.ID, &r.TenantID, &r.EmployeeID, &r.ClockInAt, &r.ClockOutAt, &r.BreakMinutes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time records: %w", err)
	}

	return records, nil
}
