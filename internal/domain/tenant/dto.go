package tenant

import (
	"time"

	"github.com/shiftline/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SettingsResponse struct {
	TenantID                       string `json:"tenant_id"`
	Timezone                       string `json:"timezone"`
	WeeklyOvertimeThresholdMinutes int    `json:"weekly_overtime_threshold_minutes"`
	DefaultOvertimeMultiplier      string `json:"default_overtime_multiplier"`
	FinalizeExceptionLimit         *int   `json:"finalize_exception_limit,omitempty"`
}

type UpdateSettingsRequest struct {
	Timezone                       *string          `json:"timezone,omitempty"`
	WeeklyOvertimeThresholdMinutes *int             `json:"weekly_overtime_threshold_minutes,omitempty"`
	DefaultOvertimeMultiplier      *decimal.Decimal `json:"default_overtime_multiplier,omitempty"`
	FinalizeExceptionLimit         *int             `json:"finalize_exception_limit,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "must be a valid IANA timezone"})
		}
	}
	if r.WeeklyOvertimeThresholdMinutes != nil && *r.WeeklyOvertimeThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "weekly_overtime_threshold_minutes", Message: "must be non-negative"})
	}
	if r.DefaultOvertimeMultiplier != nil && r.DefaultOvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{Field: "default_overtime_multiplier", Message: "must be at least 1"})
	}
	if r.FinalizeExceptionLimit != nil && *r.FinalizeExceptionLimit < 0 {
		errs = append(errs, validator.ValidationError{Field: "finalize_exception_limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
