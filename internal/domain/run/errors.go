package run

import "errors"

var (
	ErrRunNotFound        = errors.New("payroll run not found")
	ErrDuplicatePeriod    = errors.New("a live payroll run already exists for this period")
	ErrRunNotDraft        = errors.New("payroll run is not in draft status")
	ErrVoidReasonRequired = errors.New("void reason is required")
	ErrAdjustmentNotFound = errors.New("payroll adjustment not found")
	ErrTooManyExceptions  = errors.New("unresolved exceptions exceed the tenant finalize limit")
)
