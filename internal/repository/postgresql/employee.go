package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/employee"
	"github.com/shiftline/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (repo *employeeRepository) ListByTenantID(ctx context.Context, tenantID string, includeInactive bool) ([]employee.PayProfile, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT id, tenant_id, name, pay_rate_cents, pay_rate_type, overtime_multiplier, is_active
		FROM employees
		WHERE tenant_id = $1
	`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var profiles []employee.PayProfile
	for rows.Next() {
		var p employee.PayProfile
		err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.PayRateCents, &p.PayRateType, &p.OvertimeMultiplier, &p.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return profiles, nil
}

func (repo *employeeRepository) GetByID(ctx context.Context, id, tenantID string) (employee.PayProfile, error) {
	q := GetQuerier(ctx, repo.db)

	query := `
		SELECT id, tenant_id, name, pay_rate_cents, pay_rate_type, overtime_multiplier, is_active
		FROM employees
		WHERE id = $1 AND tenant_id = $2
	`

	var p employee.PayProfile
	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.PayRateCents, &p.PayRateType, &p.OvertimeMultiplier, &p.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.PayProfile{}, employee.ErrEmployeeNotFound
		}
		return employee.PayProfile{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return p, nil
}
