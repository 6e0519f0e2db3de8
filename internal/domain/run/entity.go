package run

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollType enum
type PayrollType string

const (
	PayrollTypeWeekly   PayrollType = "weekly"
	PayrollTypeBiweekly PayrollType = "biweekly"
)

// PeriodDays returns the number of days the period spans, inclusive.
func (t PayrollType) PeriodDays() int {
	if t == PayrollTypeBiweekly {
		return 14
	}
	return 7
}

func (t PayrollType) Valid() bool {
	return t == PayrollTypeWeekly || t == PayrollTypeBiweekly
}

// Status enum. Finalized and void are terminal; every legal transition
// starts from draft.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
	StatusVoid      Status = "void"
)

// CanTransitionTo reports whether the one-way lifecycle permits moving
// from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusDraft {
		return false
	}
	return target == StatusFinalized || target == StatusVoid
}

// Run - one payroll run covering a pay period for a tenant
type Run struct {
	ID                   string
	TenantID             string
	PayrollType          PayrollType
	PeriodStartDate      time.Time // date only, tenant-local
	PeriodEndDate        time.Time // date only, inclusive
	Timezone             string
	Status               Status
	TotalRegularMinutes  int
	TotalOvertimeMinutes int
	TotalGrossPayCents   int64
	GeneratedBy          string
	GeneratedAt          time.Time
	FinalizedAt          *time.Time
	FinalizedBy          *string
	VoidReason           *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	LineItems   []LineItem
	Adjustments []Adjustment
}

// LineItem - one employee's computed pay within one run. Rate and
// multiplier are snapshotted at generation time so later profile edits
// never alter a generated run.
type LineItem struct {
	ID                 string
	RunID              string
	EmployeeID         string
	RegularMinutes     int
	OvertimeMinutes    int
	TotalMinutes       int
	PayRateCents       int64
	OvertimeMultiplier decimal.Decimal
	RegularPayCents    int64
	OvertimePayCents   int64
	TotalPayCents      int64
	ExceptionsCount    int
	Details            LineItemDetails
	CreatedAt          time.Time

	// Joined fields
	EmployeeName *string
}

// LineItemDetails is the audit trail stored on each line item: which
// raw records contributed and why any were excluded.
type LineItemDetails struct {
	Records []RecordDetail `json:"records"`
	Notes   []string       `json:"notes,omitempty"`
}

type RecordDetail struct {
	RecordID      string `json:"record_id"`
	ClockInAt     string `json:"clock_in_at"`
	ClockOutAt    string `json:"clock_out_at,omitempty"`
	BreakMinutes  int    `json:"break_minutes"`
	WorkedMinutes int    `json:"worked_minutes"`
	Excluded      bool   `json:"excluded,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// AdjustmentType enum
type AdjustmentType string

const (
	AdjustmentTypeBonus         AdjustmentType = "bonus"
	AdjustmentTypeDeduction     AdjustmentType = "deduction"
	AdjustmentTypeReimbursement AdjustmentType = "reimbursement"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentTypeBonus, AdjustmentTypeDeduction, AdjustmentTypeReimbursement:
		return true
	}
	return false
}

// Adjustment - manual bonus/deduction/reimbursement on a draft run.
// AmountCents is stored non-negative; the type carries the sign.
type Adjustment struct {
	ID          string
	RunID       string
	EmployeeID  string
	Type        AdjustmentType
	AmountCents int64
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
}

// EffectiveCents returns the signed contribution of the adjustment to
// the run's gross pay.
func (a Adjustment) EffectiveCents() int64 {
	if a.Type == AdjustmentTypeDeduction {
		return -a.AmountCents
	}
	return a.AmountCents
}
