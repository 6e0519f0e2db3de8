package report

import "context"

// ReportService renders payroll runs for the reporting collaborator.
// Both operations are read-only with respect to run state; export is
// cancellable through ctx and leaves nothing behind on failure.
type ReportService interface {
	GetSnapshot(ctx context.Context, runID string) (Snapshot, error)
	ExportPDF(ctx context.Context, runID string) (ExportResponse, error)
}
