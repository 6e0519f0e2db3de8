package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/pkg/database"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) run.RunRepository {
	return &runRepository{db: db}
}

const runColumns = `
	id, tenant_id, payroll_type, period_start_date, period_end_date, timezone,
	status, total_regular_minutes, total_overtime_minutes, total_gross_pay_cents,
	generated_by, generated_at, finalized_at, finalized_by, void_reason,
	created_at, updated_at
`

func scanRun(row pgx.Row) (run.Run, error) {
	var r run.Run
	err := row.Scan(
		&r.ID, &r.TenantID, &r.PayrollType, &r.PeriodStartDate, &r.PeriodEndDate, &r.Timezone,
		&r.Status, &r.TotalRegularMinutes, &r.TotalOvertimeMinutes, &r.TotalGrossPayCents,
		&r.GeneratedBy, &r.GeneratedAt, &r.FinalizedAt, &r.FinalizedBy, &r.VoidReason,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (repo *runRepository) Create(ctx context.Context, r run.Run, items []run.LineItem) (run.Run, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		INSERT INTO payroll_runs (
			id, tenant_id, payroll_type, period_start_date, period_end_date, timezone,
			status, total_regular_minutes, total_overtime_minutes, total_gross_pay_cents,
			generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		r.ID, r.TenantID, r.PayrollType, r.PeriodStartDate.Format("2006-01-02"), r.PeriodEndDate.Format("2006-01-02"), r.Timezone,
		r.Status, r.TotalRegularMinutes, r.TotalOvertimeMinutes, r.TotalGrossPayCents,
		r.GeneratedBy, r.GeneratedAt,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_runs_live_period") {
			return run.Run{}, run.ErrDuplicatePeriod
		}
		return run.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	itemQuery := `
		INSERT INTO payroll_line_items (
			id, run_id, employee_id, regular_minutes, overtime_minutes, total_minutes,
			pay_rate_cents, overtime_multiplier, regular_pay_cents, overtime_pay_cents,
			total_pay_cents, exceptions_count, details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for _, item := range items {
		detailsJSON, err := json.Marshal(item.Details)
		if err != nil {
			return run.Run{}, fmt.Errorf("failed to marshal line item details: %w", err)
		}

		_, err = q.Exec(ctx, itemQuery,
			item.ID, r.ID, item.EmployeeID, item.RegularMinutes, item.OvertimeMinutes, item.TotalMinutes,
			item.PayRateCents, item.OvertimeMultiplier, item.RegularPayCents, item.OvertimePayCents,
			item.TotalPayCents, item.ExceptionsCount, detailsJSON,
		)
		if err != nil {
			return run.Run{}, fmt.Errorf("failed to create line item for employee %s: %w", item.EmployeeID, err)
		}
	}

	return created, nil
}

func (repo *runRepository) GetByID(ctx context.Context, id, tenantID string) (run.Run, error) {
	q := GetQuerier(ctx, repo.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1 AND tenant_id = $2`

	r, err := scanRun(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return run.Run{}, run.ErrRunNotFound
		}
		return run.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return r, nil
}

func (repo *runRepository) GetWithDetails(ctx context.Context, id, tenantID string) (run.Run, error) {
	r, err := repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return run.Run{}, err
	}

	q := GetQuerier(ctx, repo.db)

	itemQuery := `
		SELECT li.id, li.run_id, li.employee_id, li.regular_minutes, li.overtime_minutes,
			   li.total_minutes, li.pay_rate_cents, li.overtime_multiplier,
			   li.regular_pay_cents, li.overtime_pay_cents, li.total_pay_cents,
			   li.exceptions_count, li.details, li.created_at, e.name
		FROM payroll_line_items li
		LEFT JOIN employees e ON e.id = li.employee_id
		WHERE li.run_id = $1
		ORDER BY e.name NULLS LAST, li.employee_id
	`

	rows, err := q.Query(ctx, itemQuery, id)
	if err != nil {
		return run.Run{}, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item run.LineItem
		var detailsJSON []byte
		err := rows.Scan(
			&item.ID, &item.RunID, &item.EmployeeID, &item.RegularMinutes, &item.OvertimeMinutes,
			&item.TotalMinutes, &item.PayRateCents, &item.OvertimeMultiplier,
			&item.RegularPayCents, &item.OvertimePayCents, &item.TotalPayCents,
			&item.ExceptionsCount, &detailsJSON, &item.CreatedAt, &item.EmployeeName,
		)
		if err != nil {
			return run.Run{}, fmt.Errorf("failed to scan line item: %w", err)
		}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &item.Details); err != nil {
				return run.Run{}, fmt.Errorf("failed to unmarshal line item details: %w", err)
			}
		}
		r.LineItems = append(r.LineItems, item)
	}
	if err := rows.Err(); err != nil {
		return run.Run{}, fmt.Errorf("failed to read line items: %w", err)
	}

	adjQuery := `
		SELECT id, run_id, employee_id, type, amount_cents, note, created_by, created_at
		FROM payroll_adjustments
		WHERE run_id = $1
		ORDER BY created_at
	`

	adjRows, err := q.Query(ctx, adjQuery, id)
	if err != nil {
		return run.Run{}, fmt.Errorf("failed to get adjustments: %w", err)
	}
	defer adjRows.Close()

	for adjRows.Next() {
		var a run.Adjustment
		err := adjRows.Scan(&a.ID, &a.RunID, &a.EmployeeID, &a.Type, &a.AmountCents, &a.Note, &a.CreatedBy, &a.CreatedAt)
		if err != nil {
			return run.Run{}, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		r.Adjustments = append(r.Adjustments, a)
	}
	if err := adjRows.Err(); err != nil {
		return run.Run{}, fmt.Errorf("failed to read adjustments: %w", err)
	}

	return r, nil
}

func (repo *runRepository) List(ctx context.Context, tenantID string, filter run.RunFilter) ([]run.Run, int64, error) {
	q := GetQuerier(ctx, repo.db)

	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.PayrollType != nil {
		conditions = append(conditions, fmt.Sprintf("payroll_type = $%d", argPos))
		args = append(args, *filter.PayrollType)
		argPos++
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("period_start_date >= $%d", argPos))
		args = append(args, *filter.FromDate)
		argPos++
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("period_start_date <= $%d", argPos))
		args = append(args, *filter.ToDate)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM payroll_runs WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(
		"SELECT %s FROM payroll_runs WHERE %s ORDER BY period_start_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		runColumns, where, argPos, argPos+1,
	)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []run.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read payroll runs: %w", err)
	}

	return runs, totalCount, nil
}

func (repo *runRepository) ExistsLivePeriod(ctx context.Context, tenantID string, payrollType run.PayrollType, startDate, endDate string) (bool, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_runs
			WHERE tenant_id = $1 AND payroll_type = $2
			  AND period_start_date = $3 AND period_end_date = $4
			  AND status <> 'void'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, tenantID, payrollType, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for live period: %w", err)
	}

	return exists, nil
}

func (repo *runRepository) LockForUpdate(ctx context.Context, id, tenantID string) (run.Run, error) {
	q := GetQuerier(ctx, repo.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1 AND tenant_id = $2 FOR UPDATE`

	r, err := scanRun(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return run.Run{}, run.ErrRunNotFound
		}
		return run.Run{}, fmt.Errorf("failed to lock payroll run: %w", err)
	}

	return r, nil
}

func (repo *runRepository) SumExceptions(ctx context.Context, runID, tenantID string) (int, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT COALESCE(SUM(li.exceptions_count), 0)
		FROM payroll_line_items li
		JOIN payroll_runs r ON r.id = li.run_id
		WHERE li.run_id = $1 AND r.tenant_id = $2
	`

	var total int
	if err := q.QueryRow(ctx, query, runID, tenantID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum exceptions: %w", err)
	}

	return total, nil
}

func (repo *runRepository) MarkFinalized(ctx context.Context, id, tenantID, finalizedBy string) error {
	q := GetQuerier(ctx, repo.db)

	query := `
		UPDATE payroll_runs
		SET status = 'finalized', finalized_at = NOW(), finalized_by = $3, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, id, tenantID, finalizedBy)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return run.ErrRunNotDraft
	}

	return nil
}

func (repo *runRepository) MarkVoid(ctx context.Context, id, tenantID, reason string) error {
	q := GetQuerier(ctx, repo.db)

	query := `
		UPDATE payroll_runs
		SET status = 'void', void_reason = $3, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, id, tenantID, reason)
	if err != nil {
		return fmt.Errorf("failed to void payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return run.ErrRunNotDraft
	}

	return nil
}

func (repo *runRepository) Delete(ctx context.Context, id, tenantID string) error {
	q := GetQuerier(ctx, repo.db)

	// Line items and adjustments go with the run via ON DELETE CASCADE
	tag, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return run.ErrRunNotFound
	}

	return nil
}

func (repo *runRepository) RecomputeTotals(ctx context.Context, runID, tenantID string) error {
	q := GetQuerier(ctx, repo.db)

	// Totals are always derived from the parts, in the same transaction
	// that changed them.
	query := `
		UPDATE payroll_runs r
		SET total_regular_minutes = li.regular,
			total_overtime_minutes = li.overtime,
			total_gross_pay_cents = li.pay + adj.amount,
			updated_at = NOW()
		FROM (
			SELECT COALESCE(SUM(regular_minutes), 0) AS regular,
				   COALESCE(SUM(overtime_minutes), 0) AS overtime,
				   COALESCE(SUM(total_pay_cents), 0) AS pay
			FROM payroll_line_items WHERE run_id = $1
		) li, (
			SELECT COALESCE(SUM(CASE WHEN type = 'deduction' THEN -amount_cents ELSE amount_cents END), 0) AS amount
			FROM payroll_adjustments WHERE run_id = $1
		) adj
		WHERE r.id = $1 AND r.tenant_id = $2
	`

	if _, err := q.Exec(ctx, query, runID, tenantID); err != nil {
		return fmt.Errorf("failed to recompute run totals: %w", err)
	}

	return nil
}
