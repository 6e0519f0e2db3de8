package run

import "context"

// RunService defines the payroll run lifecycle operations exposed to
// the transport layer. The tenant is always taken from the caller's
// JWT claims.
type RunService interface {
	// Generate resolves the pay period, aggregates time records for each
	// eligible employee, splits overtime, computes pay and persists the
	// run with all line items in one transaction.
	Generate(ctx context.Context, req GenerateRunRequest) (RunResponse, error)

	// Get retrieves a run with its line items and adjustments.
	Get(ctx context.Context, id string) (RunResponse, error)

	// List retrieves runs matching the filter.
	List(ctx context.Context, filter RunFilter) (ListRunResponse, error)

	// Finalize moves a draft run to finalized. Terminal.
	Finalize(ctx context.Context, id string) (RunResponse, error)

	// Void moves a draft run to void, keeping line items for audit.
	Void(ctx context.Context, id string, req VoidRunRequest) (RunResponse, error)

	// Delete removes a draft run and everything it owns.
	Delete(ctx context.Context, id string) error

	// AddAdjustment attaches a bonus/deduction/reimbursement to a draft
	// run and recomputes the cached totals.
	AddAdjustment(ctx context.Context, runID string, req AddAdjustmentRequest) (AdjustmentResponse, error)

	// RemoveAdjustment deletes an adjustment from a draft run and
	// recomputes the cached totals.
	RemoveAdjustment(ctx context.Context, runID, adjustmentID string) error
}
