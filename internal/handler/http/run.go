package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/handler/http/response"
)

type RunHandler interface {
	// Lifecycle
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Adjustments
	AddAdjustment(w http.ResponseWriter, r *http.Request)
	RemoveAdjustment(w http.ResponseWriter, r *http.Request)
}

type runHandlerImpl struct {
	runService run.RunService
}

func NewRunHandler(runService run.RunService) RunHandler {
	return &runHandlerImpl{runService: runService}
}

// ========== LIFECYCLE ==========

func (h *runHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req run.GenerateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.runService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run generated", result)
}

func (h *runHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.runService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *runHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseRunFilter(r)

	result, err := h.runService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *runHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.runService.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run finalized", result)
}

func (h *runHandlerImpl) Void(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	var req run.VoidRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.runService.Void(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run voided", result)
}

func (h *runHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	if err := h.runService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run deleted", nil)
}

// ========== ADJUSTMENTS ==========

func (h *runHandlerImpl) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	var req run.AddAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.runService.AddAdjustment(r.Context(), runID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment added", result)
}

func (h *runHandlerImpl) RemoveAdjustment(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	adjustmentID := chi.URLParam(r, "adjustmentID")
	if runID == "" || adjustmentID == "" {
		response.BadRequest(w, "Run ID and adjustment ID are required", nil)
		return
	}

	if err := h.runService.RemoveAdjustment(r.Context(), runID, adjustmentID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment removed", nil)
}

func parseRunFilter(r *http.Request) run.RunFilter {
	q := r.URL.Query()

	var filter run.RunFilter
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("payroll_type"); v != "" {
		filter.PayrollType = &v
	}
	if v := q.Get("from_date"); v != "" {
		filter.FromDate = &v
	}
	if v := q.Get("to_date"); v != "" {
		filter.ToDate = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}

	return filter
}
