package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/report"
	"github.com/shiftline/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetSnapshot(w http.ResponseWriter, r *http.Request)
	ExportPDF(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.reportService.GetSnapshot(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.reportService.ExportPDF(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll register exported", result)
}
