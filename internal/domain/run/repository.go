package run

import "context"

// TxRunner executes fn inside a single database transaction. Repository
// calls made with the ctx passed to fn join that transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunRepository defines data access for payroll runs and their line
// items. All methods take tenantID to prevent cross-tenant access.
type RunRepository interface {
	// Create persists the run and all its line items. The caller is
	// expected to invoke it inside a transaction; a violation of the
	// live-period unique index surfaces as ErrDuplicatePeriod.
	Create(ctx context.Context, r Run, items []LineItem) (Run, error)

	GetByID(ctx context.Context, id, tenantID string) (Run, error)
	GetWithDetails(ctx context.Context, id, tenantID string) (Run, error)
	List(ctx context.Context, tenantID string, filter RunFilter) ([]Run, int64, error)

	// ExistsLivePeriod reports whether a non-void run already covers the
	// exact period. The unique index remains the authoritative guard;
	// this only lets generate() fail fast before aggregating.
	ExistsLivePeriod(ctx context.Context, tenantID string, payrollType PayrollType, startDate, endDate string) (bool, error)

	// LockForUpdate loads the run with a row-level lock. Must run inside
	// a transaction.
	LockForUpdate(ctx context.Context, id, tenantID string) (Run, error)

	// SumExceptions returns the total exceptions_count across the run's
	// line items.
	SumExceptions(ctx context.Context, runID, tenantID string) (int, error)

	MarkFinalized(ctx context.Context, id, tenantID, finalizedBy string) error
	MarkVoid(ctx context.Context, id, tenantID, reason string) error
	Delete(ctx context.Context, id, tenantID string) error

	// RecomputeTotals rewrites the run's cached totals from its line
	// items and adjustments. Always called in the same transaction as
	// the mutation that made them stale.
	RecomputeTotals(ctx context.Context, runID, tenantID string) error
}

// AdjustmentRepository defines data access for run adjustments.
type AdjustmentRepository interface {
	Create(ctx context.Context, tenantID string, a Adjustment) (Adjustment, error)
	ListByRun(ctx context.Context, runID, tenantID string) ([]Adjustment, error)
	Delete(ctx context.Context, id, runID, tenantID string) error
}
