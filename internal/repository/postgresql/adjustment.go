package postgresql

import (
	"context"
	"fmt"

	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) run.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (repo *adjustmentRepository) Create(ctx context.Context, tenantID string, a run.Adjustment) (run.Adjustment, error) {
	q := GetQuerier(ctx, repo.db)

	// The join against payroll_runs scopes the insert to the tenant
	// without trusting the caller's run_id.
	query := `
		INSERT INTO payroll_adjustments (id, run_id, employee_id, type, amount_cents, note, created_by)
		SELECT $1, r.id, $3, $4, $5, $6, $7
		FROM payroll_runs r
		WHERE r.id = $2 AND r.tenant_id = $8
		RETURNING id, run_id, employee_id, type, amount_cents, note, created_by, created_at
	`

	var created run.Adjustment
	err := q.QueryRow(ctx, query, a.ID, a.RunID, a.EmployeeID, a.Type, a.AmountCents, a.Note, a.CreatedBy, tenantID).Scan(
		&created.ID, &created.RunID, &created.EmployeeID, &created.Type,
		&created.AmountCents, &created.Note, &created.CreatedBy, &created.CreatedAt,
	)
	if err != nil {
		return run.Adjustment{}, fmt.Errorf("failed to create adjustment: %w", err)
	}

	return created, nil
}

func (repo *adjustmentRepository) ListByRun(ctx context.Context, runID, tenantID string) ([]run.Adjustment, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT a.id, a.run_id, a.employee_id, a.type, a.amount_cents, a.note, a.created_by, a.created_at
		FROM payroll_adjustments a
		JOIN payroll_runs r ON r.id = a.run_id
		WHERE a.run_id = $1 AND r.tenant_id = $2
		ORDER BY a.created_at
	`

	rows, err := q.Query(ctx, query, runID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []run.Adjustment
	for rows.Next() {
		var a run.Adjustment
		err := rows.Scan(&a.ID, &a.RunID, &a.EmployeeID, &a.Type, &a.AmountCents, &a.Note, &a.CreatedBy, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read adjustments: %w", err)
	}

	return adjustments, nil
}

func (repo *adjustmentRepository) Delete(ctx context.Context, id, runID, tenantID string) error {
	q := GetQuerier(ctx, repo.db)

	query := `
		DELETE FROM payroll_adjustments a
		USING payroll_runs r
		WHERE a.id = $1 AND a.run_id = $2 AND r.id = a.run_id AND r.tenant_id = $3
	`

	tag, err := q.Exec(ctx, query, id, runID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return run.ErrAdjustmentNotFound
	}

	return nil
}
