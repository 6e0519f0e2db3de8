package run

import (
	"github.com/shiftline/payroll-backend-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

type GenerateRunRequest struct {
	PayrollType     string `json:"payroll_type"`
	StartDate       string `json:"start_date"` // tenant-local, "YYYY-MM-DD"
	IncludeInactive bool   `json:"include_inactive,omitempty"`
}

func (r *GenerateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PayrollType(r.PayrollType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "payroll_type", Message: "must be 'weekly' or 'biweekly'"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VoidRunRequest struct {
	Reason string `json:"reason"`
}

func (r *VoidRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADJUSTMENT DTOs ==========

type AddAdjustmentRequest struct {
	EmployeeID  string `json:"employee_id"`
	Type        string `json:"type"` // "bonus", "deduction" or "reimbursement"
	AmountCents int64  `json:"amount_cents"`
	Note        string `json:"note,omitempty"`
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if !AdjustmentType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'bonus', 'deduction' or 'reimbursement'"})
	}
	if r.AmountCents <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount_cents", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type RunResponse struct {
	ID                   string               `json:"id"`
	TenantID             string               `json:"tenant_id"`
	PayrollType          string               `json:"payroll_type"`
	PeriodStartDate      string               `json:"period_start_date"`
	PeriodEndDate        string               `json:"period_end_date"`
	Timezone             string               `json:"timezone"`
	Status               string               `json:"status"`
	TotalRegularMinutes  int                  `json:"total_regular_minutes"`
	TotalOvertimeMinutes int                  `json:"total_overtime_minutes"`
	TotalRegularHours    string               `json:"total_regular_hours"`
	TotalOvertimeHours   string               `json:"total_overtime_hours"`
	TotalGrossPayCents   int64                `json:"total_gross_pay_cents"`
	GeneratedBy          string               `json:"generated_by"`
	GeneratedAt          string               `json:"generated_at"`
	FinalizedAt          *string              `json:"finalized_at,omitempty"`
	VoidReason           *string              `json:"void_reason,omitempty"`
	LineItems            []LineItemResponse   `json:"line_items,omitempty"`
	Adjustments          []AdjustmentResponse `json:"adjustments,omitempty"`
}

type LineItemResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	RegularMinutes     int             `json:"regular_minutes"`
	OvertimeMinutes    int             `json:"overtime_minutes"`
	TotalMinutes       int             `json:"total_minutes"`
	PayRateCents       int64           `json:"pay_rate_cents"`
	OvertimeMultiplier string          `json:"overtime_multiplier"`
	RegularPayCents    int64           `json:"regular_pay_cents"`
	OvertimePayCents   int64           `json:"overtime_pay_cents"`
	TotalPayCents      int64           `json:"total_pay_cents"`
	ExceptionsCount    int             `json:"exceptions_count"`
	Details            LineItemDetails `json:"details"`
}

type AdjustmentResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
	Note        string `json:"note,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ========== LIST DTOs ==========

type RunFilter struct {
	Status      *string `json:"status,omitempty"`
	PayrollType *string `json:"payroll_type,omitempty"`
	FromDate    *string `json:"from_date,omitempty"` // period_start_date >= from
	ToDate      *string `json:"to_date,omitempty"`   // period_start_date <= to
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type ListRunResponse struct {
	Data       []RunResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}
