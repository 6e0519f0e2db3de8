package tenant

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings - per-tenant payroll policy
type Settings struct {
	ID                             string
	TenantID                       string
	Timezone                       string
	WeeklyOvertimeThresholdMinutes int
	DefaultOvertimeMultiplier      decimal.Decimal
	// FinalizeExceptionLimit caps the total exceptions a run may carry
	// and still be finalized. Nil means no limit.
	FinalizeExceptionLimit *int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultSettings returns the policy applied to tenants that never
// configured one: UTC, 40-hour weekly threshold, 1.5x overtime.
func DefaultSettings(tenantID string) Settings {
	return Settings{
		TenantID:                       tenantID,
		Timezone:                       "UTC",
		WeeklyOvertimeThresholdMinutes: 2400,
		DefaultOvertimeMultiplier:      decimal.NewFromFloat(1.5),
	}
}
