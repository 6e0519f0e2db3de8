package report

import "github.com/shiftline/payroll-backend-go/internal/domain/run"

// Snapshot is the read-only view of a run handed to the reporting
// collaborator. It works for any status and never feeds back into the
// run's lifecycle.
type Snapshot struct {
	Run         run.RunResponse          `json:"run"`
	LineItems   []run.LineItemResponse   `json:"line_items"`
	Adjustments []run.AdjustmentResponse `json:"adjustments"`
}

type ExportResponse struct {
	RunID   string `json:"run_id"`
	FileURL string `json:"file_url"`
}
