package run

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftline/payroll-backend-go/internal/domain/employee"
	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/domain/tenant"
	"github.com/shiftline/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

type RunServiceImpl struct {
	tx           run.TxRunner
	runRepo      run.RunRepository
	adjRepo      run.AdjustmentRepository
	employeeRepo employee.EmployeeRepository
	timeRepo     timesheet.TimeRecordRepository
	settingsRepo tenant.SettingsRepository
}

func NewRunService(
	tx run.TxRunner,
	runRepo run.RunRepository,
	adjRepo run.AdjustmentRepository,
	employeeRepo employee.EmployeeRepository,
	timeRepo timesheet.TimeRecordRepository,
	settingsRepo tenant.SettingsRepository,
) run.RunService {
	return &RunServiceImpl{
		tx:           tx,
		runRepo:      runRepo,
		adjRepo:      adjRepo,
		employeeRepo: employeeRepo,
		timeRepo:     timeRepo,
		settingsRepo: settingsRepo,
	}
}

// Helper to get tenant_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (tenantID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	tenantID, ok := claims["tenant_id"].(string)
	if !ok || tenantID == "" {
		return "", "", fmt.Errorf("tenant_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return tenantID, userID, nil
}

func (s *RunServiceImpl) tenantSettings(ctx context.Context, tenantID string) (tenant.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrSettingsNotFound) {
			return tenant.DefaultSettings(tenantID), nil
		}
		return tenant.Settings{}, err
	}
	return settings, nil
}

// ========== GENERATION ==========

func (s *RunServiceImpl) Generate(ctx context.Context, req run.GenerateRunRequest) (run.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return run.RunResponse{}, err
	}

	tenantID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return run.RunResponse{}, err
	}

	settings, err := s.tenantSettings(ctx, tenantID)
	if err != nil {
		return run.RunResponse{}, err
	}

	payrollType := run.PayrollType(req.PayrollType)
	period, err := ResolvePeriod(payrollType, req.StartDate, settings.Timezone)
	if err != nil {
		return run.RunResponse{}, fmt.Errorf("failed to resolve period: %w", err)
	}

	// Fail fast before aggregating. The partial unique index still
	// closes the race at insert time.
	exists, err := s.runRepo.ExistsLivePeriod(ctx, tenantID, payrollType, period.StartDateString(), period.EndDateString())
	if err != nil {
		return run.RunResponse{}, fmt.Errorf("failed to check for existing run: %w", err)
	}
	if exists {
		return run.RunResponse{}, run.ErrDuplicatePeriod
	}

	employees, err := s.employeeRepo.ListByTenantID(ctx, tenantID, req.IncludeInactive)
	if err != nil {
		return run.RunResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	from, to := period.Bounds()

	var items []run.LineItem
	for _, emp := range employees {
		records, err := s.timeRepo.ListForPeriod(ctx, tenantID, emp.ID, from, to)
		if err != nil {
			return run.RunResponse{}, fmt.Errorf("failed to get time records for employee %s: %w", emp.ID, err)
		}

		items = append(items, s.buildLineItem(emp, records, period, settings))
	}

	newRun := run.Run{
		ID:              uuid.Must(uuid.NewV7()).String(),
		TenantID:        tenantID,
		PayrollType:     payrollType,
		PeriodStartDate: period.StartDate,
		PeriodEndDate:   period.EndDate,
		Timezone:        settings.Timezone,
		Status:          run.StatusDraft,
		GeneratedBy:     userID,
		GeneratedAt:     time.Now().UTC(),
	}

	// Run totals are always the sum of the line items, computed here and
	// persisted in the same transaction as the items themselves.
	for i := range items {
		items[i].RunID = newRun.ID
		newRun.TotalRegularMinutes += items[i].RegularMinutes
		newRun.TotalOvertimeMinutes += items[i].OvertimeMinutes
		newRun.TotalGrossPayCents += items[i].TotalPayCents
	}

	var created run.Run
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		created, err = s.runRepo.Create(txCtx, newRun, items)
		return err
	})
	if err != nil {
		return run.RunResponse{}, err
	}

	created.LineItems = items
	return mapToRunResponse(created, true), nil
}

// buildLineItem runs one employee through aggregation, overtime split
// and pay calculation. Anomalies degrade into the exceptions count and
// audit notes; they never abort the run.
func (s *RunServiceImpl) buildLineItem(emp employee.PayProfile, records []timesheet.TimeRecord, period Period, settings tenant.Settings) run.LineItem {
	agg := AggregateRecords(records, period.Location)
	regular, overtime := SplitOvertime(agg.MinutesByWeek, settings.WeeklyOvertimeThresholdMinutes)

	multiplier := settings.DefaultOvertimeMultiplier
	if emp.OvertimeMultiplier != nil {
		multiplier = *emp.OvertimeMultiplier
	}

	item := run.LineItem{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		EmployeeID:         emp.ID,
		RegularMinutes:     regular,
		OvertimeMinutes:    overtime,
		TotalMinutes:       regular + overtime,
		PayRateCents:       emp.PayRateCents,
		OvertimeMultiplier: multiplier,
		ExceptionsCount:    agg.Exceptions,
		Details:            agg.Details,
	}

	// An employee without a usable hourly rate still gets a line item,
	// with zero pay and the anomaly on record.
	if emp.PayRateType != employee.PayRateTypeHourly || emp.PayRateCents <= 0 {
		item.ExceptionsCount++
		item.Details.Notes = append(item.Details.Notes, "no usable hourly pay rate; pay not computed")
		return item
	}

	item.RegularPayCents = RegularPayCents(regular, emp.PayRateCents)
	item.OvertimePayCents = OvertimePayCents(overtime, emp.PayRateCents, multiplier)
	item.TotalPayCents = item.RegularPayCents + item.OvertimePayCents

	return item
}

// ========== READS ==========

func (s *RunServiceImpl) Get(ctx context.Context, id string) (run.RunResponse, error) {
	tenantID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return run.RunResponse{}, err
	}

	r, err := s.runRepo.GetWithDetails(ctx, id, tenantID)
	if err != nil {
		return run.RunResponse{}, err
	}

	return mapToRunResponse(r, true), nil
}

func (s *RunServiceImpl) List(ctx context.Context, filter run.RunFilter) (run.ListRunResponse, error) {
	tenantID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return run.ListRunResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	runs, totalCount, err := s.runRepo.List(ctx, tenantID, filter)
	if err != nil {
		return run.ListRunResponse{}, err
	}

	data := make([]run.RunResponse, 0, len(runs))
	for _, r := range runs {
		data = append(data, mapToRunResponse(r, false))
	}

	return run.ListRunResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== LIFECYCLE ==========

func (s *RunServiceImpl) Finalize(ctx context.Context, id string) (run.RunResponse, error) {
	tenantID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return run.RunResponse{}, err
	}

	settings, err := s.tenantSettings(ctx, tenantID)
	if err != nil {
		return run.RunResponse{}, err
	}

	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		locked, err := s.runRepo.LockForUpdate(txCtx, id, tenantID)
		if err != nil {
			return err
		}
		if !locked.Status.CanTransitionTo(run.StatusFinalized) {
			return run.ErrRunNotDraft
		}

		if settings.FinalizeExceptionLimit != nil {
			exceptions, err := s.runRepo.SumExceptions(txCtx, id, tenantID)
			if err != nil {
				return err
			}
			if exceptions > *settings.FinalizeExceptionLimit {
				return run.ErrTooManyExceptions
			}
		}

		return s.runRepo.MarkFinalized(txCtx, id, tenantID, userID)
	})
	if err != nil {
		return run.RunResponse{}, err
	}

	return s.Get(ctx, id)
}

func (s *RunServiceImpl) Void(ctx context.Context, id string, req run.VoidRunRequest) (run.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return run.RunResponse{}, err
	}

	tenantID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return run.RunResponse{}, err
	}

	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		locked, err := s.runRepo.LockForUpdate(txCtx, id, tenantID)
		if err != nil {
			return err
		}
		if !locked.Status.CanTransitionTo(run.StatusVoid) {
			return run.ErrRunNotDraft
		}

		return s.runRepo.MarkVoid(txCtx, id, tenantID, req.Reason)
	})
	if err != nil {
		return run.RunResponse{}, err
	}

	return s.Get(ctx, id)
}

func (s *RunServiceImpl) Delete(ctx context.Context, id string) error {
	tenantID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(txCtx context.Context) error {
		locked, err := s.runRepo.LockForUpdate(txCtx, id, tenantID)
		if err != nil {
			return err
		}
		if locked.Status != run.StatusDraft {
			return run.ErrRunNotDraft
		}

		return s.runRepo.Delete(txCtx, id, tenantID)
	})
}

// ========== ADJUSTMENTS ==========

func (s *RunServiceImpl) AddAdjustment(ctx context.Context, runID string, req run.AddAdjustmentRequest) (run.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return run.AdjustmentResponse{}, err
	}

	tenantID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return run.AdjustmentResponse{}, err
	}

	adjustment := run.Adjustment{
		ID:          uuid.Must(uuid.NewV7()).String(),
		RunID:       runID,
		EmployeeID:  req.EmployeeID,
		Type:        run.AdjustmentType(req.Type),
		AmountCents: req.AmountCents,
		Note:        req.Note,
		CreatedBy:   userID,
	}

	var created run.Adjustment
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		locked, err := s.runRepo.LockForUpdate(txCtx, runID, tenantID)
		if err != nil {
			return err
		}
		if locked.Status != run.StatusDraft {
			return run.ErrRunNotDraft
		}

		created, err = s.adjRepo.Create(txCtx, tenantID, adjustment)
		if err != nil {
			return err
		}

		return s.runRepo.RecomputeTotals(txCtx, runID, tenantID)
	})
	if err != nil {
		return run.AdjustmentResponse{}, err
	}

	return mapToAdjustmentResponse(created), nil
}

func (s *RunServiceImpl) RemoveAdjustment(ctx context.Context, runID, adjustmentID string) error {
	tenantID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(txCtx context.Context) error {
		locked, err := s.runRepo.LockForUpdate(txCtx, runID, tenantID)
		if err != nil {
			return err
		}
		if locked.Status != run.StatusDraft {
			return run.ErrRunNotDraft
		}

		if err := s.adjRepo.Delete(txCtx, adjustmentID, runID, tenantID); err != nil {
			return err
		}

		return s.runRepo.RecomputeTotals(txCtx, runID, tenantID)
	})
}

// ========== HELPERS ==========

func minutesToHours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).StringFixed(2)
}

func mapToRunResponse(r run.Run, withDetails bool) run.RunResponse {
	var finalizedAtStr *string
	if r.FinalizedAt != nil {
		str := r.FinalizedAt.Format(time.RFC3339)
		finalizedAtStr = &str
	}

	resp := run.RunResponse{
		ID:                   r.ID,
		TenantID:             r.TenantID,
		PayrollType:          string(r.PayrollType),
		PeriodStartDate:      r.PeriodStartDate.Format("2006-01-02"),
		PeriodEndDate:        r.PeriodEndDate.Format("2006-01-02"),
		Timezone:             r.Timezone,
		Status:               string(r.Status),
		TotalRegularMinutes:  r.TotalRegularMinutes,
		TotalOvertimeMinutes: r.TotalOvertimeMinutes,
		TotalRegularHours:    minutesToHours(r.TotalRegularMinutes),
		TotalOvertimeHours:   minutesToHours(r.TotalOvertimeMinutes),
		TotalGrossPayCents:   r.TotalGrossPayCents,
		GeneratedBy:          r.GeneratedBy,
		GeneratedAt:          r.GeneratedAt.Format(time.RFC3339),
		FinalizedAt:          finalizedAtStr,
		VoidReason:           r.VoidReason,
	}

	if withDetails {
		for _, item := range r.LineItems {
			resp.LineItems = append(resp.LineItems, mapToLineItemResponse(item))
		}
		for _, a := range r.Adjustments {
			resp.Adjustments = append(resp.Adjustments, mapToAdjustmentResponse(a))
		}
	}

	return resp
}

func mapToLineItemResponse(item run.LineItem) run.LineItemResponse {
	return run.LineItemResponse{
		ID:                 item.ID,
		EmployeeID:         item.EmployeeID,
		EmployeeName:       item.EmployeeName,
		RegularMinutes:     item.RegularMinutes,
		OvertimeMinutes:    item.OvertimeMinutes,
		TotalMinutes:       item.TotalMinutes,
		PayRateCents:       item.PayRateCents,
		OvertimeMultiplier: item.OvertimeMultiplier.String(),
		RegularPayCents:    item.RegularPayCents,
		OvertimePayCents:   item.OvertimePayCents,
		TotalPayCents:      item.TotalPayCents,
		ExceptionsCount:    item.ExceptionsCount,
		Details:            item.Details,
	}
}

func mapToAdjustmentResponse(a run.Adjustment) run.AdjustmentResponse {
	return run.AdjustmentResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Type:        string(a.Type),
		AmountCents: a.AmountCents,
		Note:        a.Note,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
