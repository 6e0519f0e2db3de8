package response

import (
	"errors"
	"net/http"

	"github.com/shiftline/payroll-backend-go/internal/domain/employee"
	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/domain/tenant"
	"github.com/shiftline/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Run domain errors
	case errors.Is(err, run.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, run.ErrDuplicatePeriod):
		Conflict(w, "DUPLICATE_PERIOD", "A live payroll run already exists for this period")
	case errors.Is(err, run.ErrRunNotDraft):
		Conflict(w, "INVALID_STATE", "Payroll run is not in draft status")
	case errors.Is(err, run.ErrTooManyExceptions):
		Conflict(w, "INVALID_STATE", "Unresolved exceptions exceed the finalize limit")
	case errors.Is(err, run.ErrVoidReasonRequired):
		ValidationError(w, map[string]string{"reason": "is required"})
	case errors.Is(err, run.ErrAdjustmentNotFound):
		NotFound(w, "Payroll adjustment not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Tenant domain errors
	case errors.Is(err, tenant.ErrSettingsNotFound):
		NotFound(w, "Tenant payroll settings not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
