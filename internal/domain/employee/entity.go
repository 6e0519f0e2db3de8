package employee

import "github.com/shopspring/decimal"

// PayRateType enum. Only hourly pay is modeled by the engine.
type PayRateType string

const PayRateTypeHourly PayRateType = "hourly"

// PayProfile is the read-only slice of an employee the engine consumes
// from the employee directory: identity plus rate facts. The rate and
// multiplier are snapshotted onto line items at generation time.
type PayProfile struct {
	ID                 string
	TenantID           string
	Name               string
	PayRateCents       int64
	PayRateType        PayRateType
	OvertimeMultiplier *decimal.Decimal // nil falls back to the tenant default
	IsActive           bool
}
