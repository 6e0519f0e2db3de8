package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/tenant"
	"github.com/shiftline/payroll-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) tenant.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `
	id, tenant_id, timezone, weekly_overtime_threshold_minutes,
	default_overtime_multiplier, finalize_exception_limit, created_at, updated_at
`

func scanSettings(row pgx.Row) (tenant.Settings, error) {
	var s tenant.Settings
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Timezone, &s.WeeklyOvertimeThresholdMinutes,
		&s.DefaultOvertimeMultiplier, &s.FinalizeExceptionLimit, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (repo *settingsRepository) GetSettings(ctx context.Context, tenantID string) (tenant.Settings, error) {
	q := GetQuerier(ctx, repo.db)

	query := `SELECT ` + settingsColumns + ` FROM tenant_payroll_settings WHERE tenant_id = $1`

	s, err := scanSettings(q.QueryRow(ctx, query, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Settings{}, tenant.ErrSettingsNotFound
		}
		return tenant.Settings{}, fmt.Errorf("failed to get tenant settings: %w", err)
	}

	return s, nil
}

func (repo *settingsRepository) UpsertSettings(ctx context.Context, settings tenant.Settings) (tenant.Settings, error) {
	q := GetQuerier(ctx, repo.db)

	if settings.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return tenant.Settings{}, fmt.Errorf("failed to generate settings ID: %w", err)
		}
		settings.ID = id.String()
	}

	query := `
		INSERT INTO tenant_payroll_settings (
			id, tenant_id, timezone, weekly_overtime_threshold_minutes,
			default_overtime_multiplier, finalize_exception_limit
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			weekly_overtime_threshold_minutes = EXCLUDED.weekly_overtime_threshold_minutes,
			default_overtime_multiplier = EXCLUDED.default_overtime_multiplier,
			finalize_exception_limit = EXCLUDED.finalize_exception_limit,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	saved, err := scanSettings(q.QueryRow(ctx, query,
		settings.ID, settings.TenantID, settings.Timezone, settings.WeeklyOvertimeThresholdMinutes,
		settings.DefaultOvertimeMultiplier, settings.FinalizeExceptionLimit,
	))
	if err != nil {
		return tenant.Settings{}, fmt.Errorf("failed to upsert tenant settings: %w", err)
	}

	return saved, nil
}
