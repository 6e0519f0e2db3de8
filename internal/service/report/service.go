package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shiftline/payroll-backend-go/internal/domain/report"
	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	runService run.RunService
	files      storage.FileStorage
}

func NewReportService(runService run.RunService, files storage.FileStorage) report.ReportService {
	return &ReportServiceImpl{runService: runService, files: files}
}

// GetSnapshot returns the run exactly as stored, any status. Reporting
// never feeds back into the lifecycle.
func (s *ReportServiceImpl) GetSnapshot(ctx context.Context, runID string) (report.Snapshot, error) {
	r, err := s.runService.Get(ctx, runID)
	if err != nil {
		return report.Snapshot{}, err
	}

	snapshot := report.Snapshot{
		Run:         r,
		LineItems:   r.LineItems,
		Adjustments: r.Adjustments,
	}
	snapshot.Run.LineItems = nil
	snapshot.Run.Adjustments = nil

	return snapshot, nil
}

// ExportPDF renders a run register to PDF and stores it. The document
// is built in memory and only uploaded when complete, so a cancelled or
// failed export leaves no artifact and never touches run state.
func (s *ReportServiceImpl) ExportPDF(ctx context.Context, runID string) (report.ExportResponse, error) {
	snapshot, err := s.GetSnapshot(ctx, runID)
	if err != nil {
		return report.ExportResponse{}, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Register")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s (%s)", snapshot.Run.PeriodStartDate, snapshot.Run.PeriodEndDate, snapshot.Run.Timezone))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Type: %s  Status: %s", snapshot.Run.PayrollType, snapshot.Run.Status))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Regular: %s h  Overtime: %s h  Gross: %s", snapshot.Run.TotalRegularHours, snapshot.Run.TotalOvertimeHours, centsToAmount(snapshot.Run.TotalGrossPayCents)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(60, 7, "Employee")
	pdf.Cell(30, 7, "Regular")
	pdf.Cell(30, 7, "Overtime")
	pdf.Cell(30, 7, "Pay")
	pdf.Cell(30, 7, "Exceptions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)

	for _, item := range snapshot.LineItems {
		if err := ctx.Err(); err != nil {
			return report.ExportResponse{}, err
		}

		name := item.EmployeeID
		if item.EmployeeName != nil {
			name = *item.EmployeeName
		}
		pdf.Cell(60, 6, name)
		pdf.Cell(30, 6, fmt.Sprintf("%dm", item.RegularMinutes))
		pdf.Cell(30, 6, fmt.Sprintf("%dm", item.OvertimeMinutes))
		pdf.Cell(30, 6, centsToAmount(item.TotalPayCents))
		pdf.Cell(30, 6, fmt.Sprintf("%d", item.ExceptionsCount))
		pdf.Ln(6)
	}

	if len(snapshot.Adjustments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Adjustments")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, a := range snapshot.Adjustments {
			pdf.Cell(60, 6, a.EmployeeID)
			pdf.Cell(40, 6, a.Type)
			pdf.Cell(30, 6, centsToAmount(a.AmountCents))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return report.ExportResponse{}, fmt.Errorf("failed to render payroll register: %w", err)
	}

	path := fmt.Sprintf("payroll-runs/%s/register-%d.pdf", runID, time.Now().Unix())
	stored, err := s.files.Upload(ctx, &buf, path, "application/pdf")
	if err != nil {
		return report.ExportResponse{}, fmt.Errorf("failed to store payroll register: %w", err)
	}

	url, err := s.files.GetURL(ctx, stored, 0)
	if err != nil {
		return report.ExportResponse{}, err
	}

	return report.ExportResponse{RunID: runID, FileURL: url}, nil
}

func centsToAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
