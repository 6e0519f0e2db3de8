package run

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftline/payroll-backend-go/internal/domain/employee"
	"github.com/shiftline/payroll-backend-go/internal/domain/run"
	"github.com/shiftline/payroll-backend-go/internal/domain/tenant"
	"github.com/shiftline/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTenantID = "0195f3a0-0000-7000-8000-000000000001"
	testUserID   = "0195f3a0-0000-7000-8000-000000000002"
	testEmpID    = "0195f3a0-0000-7000-8000-000000000003"
)

func authedContext(t *testing.T, tenantID, userID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"tenant_id": tenantID,
		"user_id":   userID,
		"type":      "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ========== FAKES ==========

type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStore struct {
	runs        map[string]run.Run
	items       map[string][]run.LineItem
	adjustments map[string][]run.Adjustment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		runs:        make(map[string]run.Run),
		items:       make(map[string][]run.LineItem),
		adjustments: make(map[string][]run.Adjustment),
	}
}

func (s *fakeStore) Create(ctx context.Context, r run.Run, items []run.LineItem) (run.Run, error) {
	for _, existing := range s.runs {
		if existing.TenantID == r.TenantID &&
			existing.PayrollType == r.PayrollType &&
			existing.PeriodStartDate.Equal(r.PeriodStartDate) &&
			existing.PeriodEndDate.Equal(r.PeriodEndDate) &&
			existing.Status != run.StatusVoid {
			return run.Run{}, run.ErrDuplicatePeriod
		}
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	s.runs[r.ID] = r
	s.items[r.ID] = items
	return r, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id, tenantID string) (run.Run, error) {
	r, ok := s.runs[id]
	if !ok || r.TenantID != tenantID {
		return run.Run{}, run.ErrRunNotFound
	}
	return r, nil
}

func (s *fakeStore) GetWithDetails(ctx context.Context, id, tenantID string) (run.Run, error) {
	r, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return run.Run{}, err
	}
	r.LineItems = s.items[id]
	r.Adjustments = s.adjustments[id]
	return r, nil
}

func (s *fakeStore) List(ctx context.Context, tenantID string, filter run.RunFilter) ([]run.Run, int64, error) {
	var runs []run.Run
	for _, r := range s.runs {
		if r.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.PayrollType != nil && string(r.PayrollType) != *filter.PayrollType {
			continue
		}
		runs = append(runs, r)
	}
	return runs, int64(len(runs)), nil
}

func (s *fakeStore) ExistsLivePeriod(ctx context.Context, tenantID string, payrollType run.PayrollType, startDate, endDate string) (bool, error) {
	for _, r := range s.runs {
		if r.TenantID == tenantID &&
			r.PayrollType == payrollType &&
			r.PeriodStartDate.Format("2006-01-02") == startDate &&
			r.PeriodEndDate.Format("2006-01-02") == endDate &&
			r.Status != run.StatusVoid {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) LockForUpdate(ctx context.Context, id, tenantID string) (run.Run, error) {
	return s.GetByID(ctx, id, tenantID)
}

func (s *fakeStore) SumExceptions(ctx context.Context, runID, tenantID string) (int, error) {
	total := 0
	for _, item := range s.items[runID] {
		total += item.ExceptionsCount
	}
	return total, nil
}

func (s *fakeStore) MarkFinalized(ctx context.Context, id, tenantID, finalizedBy string) error {
	r, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if r.Status != run.StatusDraft {
		return run.ErrRunNotDraft
	}
	now := time.Now()
	r.Status = run.StatusFinalized
	r.FinalizedAt = &now
	r.FinalizedBy = &finalizedBy
	s.runs[id] = r
	return nil
}

func (s *fakeStore) MarkVoid(ctx context.Context, id, tenantID, reason string) error {
	r, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if r.Status != run.StatusDraft {
		return run.ErrRunNotDraft
	}
	r.Status = run.StatusVoid
	r.VoidReason = &reason
	s.runs[id] = r
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id, tenantID string) error {
	if _, err := s.GetByID(ctx, id, tenantID); err != nil {
		return err
	}
	delete(s.runs, id)
	delete(s.items, id)
	delete(s.adjustments, id)
	return nil
}

func (s *fakeStore) RecomputeTotals(ctx context.Context, runID, tenantID string) error {
	r, err := s.GetByID(ctx, runID, tenantID)
	if err != nil {
		return err
	}
	r.TotalRegularMinutes = 0
	r.TotalOvertimeMinutes = 0
	r.TotalGrossPayCents = 0
	for _, item := range s.items[runID] {
		r.TotalRegularMinutes += item.RegularMinutes
		r.TotalOvertimeMinutes += item.OvertimeMinutes
		r.TotalGrossPayCents += item.TotalPayCents
	}
	for _, a := range s.adjustments[runID] {
		r.TotalGrossPayCents += a.EffectiveCents()
	}
	s.runs[runID] = r
	return nil
}

func (s *fakeStore) CreateAdjustment(ctx context.Context, tenantID string, a run.Adjustment) (run.Adjustment, error) {
	a.CreatedAt = time.Now()
	s.adjustments[a.RunID] = append(s.adjustments[a.RunID], a)
	return a, nil
}

func (s *fakeStore) ListByRun(ctx context.Context, runID, tenantID string) ([]run.Adjustment, error) {
	return s.adjustments[runID], nil
}

func (s *fakeStore) DeleteAdjustment(ctx context.Context, id, runID, tenantID string) error {
	list := s.adjustments[runID]
	for i, a := range list {
		if a.ID == id {
			s.adjustments[runID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return run.ErrAdjustmentNotFound
}

// adjustmentStore adapts fakeStore to the AdjustmentRepository interface,
// whose Create/Delete names collide with RunRepository's.
type adjustmentStore struct{ *fakeStore }

func (s adjustmentStore) Create(ctx context.Context, tenantID string, a run.Adjustment) (run.Adjustment, error) {
	return s.CreateAdjustment(ctx, tenantID, a)
}

func (s adjustmentStore) Delete(ctx context.Context, id, runID, tenantID string) error {
	return s.DeleteAdjustment(ctx, id, runID, tenantID)
}

type fakeEmployeeRepo struct {
	profiles []employee.PayProfile
}

func (f *fakeEmployeeRepo) ListByTenantID(ctx context.Context, tenantID string, includeInactive bool) ([]employee.PayProfile, error) {
	var out []employee.PayProfile
	for _, p := range f.profiles {
		if p.TenantID != tenantID {
			continue
		}
		if !includeInactive && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id, tenantID string) (employee.PayProfile, error) {
	for _, p := range f.profiles {
		if p.ID == id && p.TenantID == tenantID {
			return p, nil
		}
	}
	return employee.PayProfile{}, employee.ErrEmployeeNotFound
}

type fakeTimeRepo struct {
	records []timesheet.TimeRecord
}

func (f *fakeTimeRepo) ListForPeriod(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]timesheet.TimeRecord, error) {
	var out []timesheet.TimeRecord
	for _, r := range f.records {
		if r.TenantID != tenantID || r.EmployeeID != employeeID {
			continue
		}
		if r.ClockInAt.Before(from) || !r.ClockInAt.Before(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings *tenant.Settings
}

func (f *fakeSettingsRepo) GetSettings(ctx context.Context, tenantID string) (tenant.Settings, error) {
	if f.settings == nil {
		return tenant.Settings{}, tenant.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) UpsertSettings(ctx context.Context, settings tenant.Settings) (tenant.Settings, error) {
	f.settings = &settings
	return settings, nil
}

// ========== FIXTURE ==========

type fixture struct {
	store    *fakeStore
	emps     *fakeEmployeeRepo
	times    *fakeTimeRepo
	settings *fakeSettingsRepo
	svc      run.RunService
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	store := newFakeStore()
	emps := &fakeEmployeeRepo{}
	times := &fakeTimeRepo{}
	settings := &fakeSettingsRepo{}

	return &fixture{
		store:    store,
		emps:     emps,
		times:    times,
		settings: settings,
		svc:      NewRunService(fakeTxRunner{}, store, adjustmentStore{store}, emps, times, settings),
		ctx:      authedContext(t, testTenantID, testUserID),
	}
}

func (f *fixture) addHourlyEmployee(id string, rateCents int64) {
	f.emps.profiles = append(f.emps.profiles, employee.PayProfile{
		ID:           id,
		TenantID:     testTenantID,
		Name:         "Employee " + id[len(id)-4:],
		PayRateCents: rateCents,
		PayRateType:  employee.PayRateTypeHourly,
		IsActive:     true,
	})
}

func (f *fixture) addShift(employeeID string, clockIn time.Time, workedMinutes, breakMinutes int) {
	out := clockIn.Add(time.Duration(workedMinutes+breakMinutes) * time.Minute)
	f.times.records = append(f.times.records, timesheet.TimeRecord{
		ID:           clockIn.Format(time.RFC3339),
		TenantID:     testTenantID,
		EmployeeID:   employeeID,
		ClockInAt:    clockIn,
		ClockOutAt:   &out,
		BreakMinutes: breakMinutes,
	})
}

// ========== GENERATE ==========

func TestGenerate_SingleShift(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)
	// 8h with a 30-minute break on Monday 2025-06-02.
	f.addShift(testEmpID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 450, 30)

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "2025-06-02", resp.PeriodStartDate)
	assert.Equal(t, "2025-06-08", resp.PeriodEndDate)
	assert.Equal(t, 450, resp.TotalRegularMinutes)
	assert.Equal(t, 0, resp.TotalOvertimeMinutes)
	assert.Equal(t, int64(11250), resp.TotalGrossPayCents)

	require.Len(t, resp.LineItems, 1)
	item := resp.LineItems[0]
	assert.Equal(t, int64(11250), item.RegularPayCents)
	assert.Equal(t, int64(0), item.OvertimePayCents)
	assert.Equal(t, int64(11250), item.TotalPayCents)
	assert.Equal(t, 0, item.ExceptionsCount)
}

func TestGenerate_OvertimeWeek(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)
	// 45 hours across five 9-hour days, all in one ISO week.
	for day := 2; day <= 6; day++ {
		f.addShift(testEmpID, time.Date(2025, 6, day, 8, 0, 0, 0, time.UTC), 540, 0)
	}

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 2400, resp.TotalRegularMinutes)
	assert.Equal(t, 300, resp.TotalOvertimeMinutes)
	// 40h * 15.00 + 5h * 15.00 * 1.5
	assert.Equal(t, int64(71250), resp.TotalGrossPayCents)
}

func TestGenerate_BiweeklyWeeksSplitIndependently(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)
	// Week one: 45 hours. Week two: 35 hours. Overtime must come from
	// week one alone even though the period total is only 80 hours.
	for day := 2; day <= 6; day++ {
		f.addShift(testEmpID, time.Date(2025, 6, day, 8, 0, 0, 0, time.UTC), 540, 0)
	}
	for day := 9; day <= 13; day++ {
		f.addShift(testEmpID, time.Date(2025, 6, day, 8, 0, 0, 0, time.UTC), 420, 0)
	}

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "biweekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, 4500, resp.TotalRegularMinutes)
	assert.Equal(t, 300, resp.TotalOvertimeMinutes)
}

func TestGenerate_DuplicatePeriod(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)

	req := run.GenerateRunRequest{PayrollType: "weekly", StartDate: "2025-06-02"}
	_, err := f.svc.Generate(f.ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Generate(f.ctx, req)
	assert.ErrorIs(t, err, run.ErrDuplicatePeriod)
}

func TestGenerate_VoidedPeriodCanBeRegenerated(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)

	req := run.GenerateRunRequest{PayrollType: "weekly", StartDate: "2025-06-02"}
	first, err := f.svc.Generate(f.ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Void(f.ctx, first.ID, run.VoidRunRequest{Reason: "wrong rates"})
	require.NoError(t, err)

	second, err := f.svc.Generate(f.ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGenerate_OpenRecordBecomesException(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)
	f.addShift(testEmpID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 480, 0)
	f.times.records = append(f.times.records, timesheet.TimeRecord{
		ID:         "open-shift",
		TenantID:   testTenantID,
		EmployeeID: testEmpID,
		ClockInAt:  time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
	})

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 1)
	item := resp.LineItems[0]
	assert.Equal(t, 480, item.RegularMinutes)
	assert.Equal(t, 1, item.ExceptionsCount)
	assert.NotEmpty(t, item.Details.Notes)
}

func TestGenerate_EmployeeWithoutHoursGetsZeroLine(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 1)
	assert.Equal(t, int64(0), resp.LineItems[0].TotalPayCents)
	assert.Equal(t, 0, resp.LineItems[0].ExceptionsCount)
}

func TestGenerate_UnusableRateFlagsException(t *testing.T) {
	f := newFixture(t)
	f.emps.profiles = append(f.emps.profiles, employee.PayProfile{
		ID:           testEmpID,
		TenantID:     testTenantID,
		Name:         "No Rate",
		PayRateCents: 0,
		PayRateType:  employee.PayRateTypeHourly,
		IsActive:     true,
	})
	f.addShift(testEmpID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 480, 0)

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 1)
	item := resp.LineItems[0]
	assert.Equal(t, 480, item.RegularMinutes)
	assert.Equal(t, int64(0), item.TotalPayCents)
	assert.Equal(t, 1, item.ExceptionsCount)
}

func TestGenerate_InactiveEmployeesExcludedByDefault(t *testing.T) {
	f := newFixture(t)
	f.addHourlyEmployee(testEmpID, 1500)
	f.emps.profiles = append(f.emps.profiles, employee.PayProfile{
		ID:           "0195f3a0-0000-7000-8000-00000000dead",
		TenantID:     testTenantID,
		Name:         "Former",
		PayRateCents: 1500,
		PayRateType:  employee.PayRateTypeHourly,
		IsActive:     false,
	})

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)
	assert.Len(t, resp.LineItems, 1)

	_, err = f.svc.Void(f.ctx, resp.ID, run.VoidRunRequest{Reason: "redo with leavers"})
	require.NoError(t, err)

	resp, err = f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType:     "weekly",
		StartDate:       "2025-06-02",
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.LineItems, 2)
}

func TestGenerate_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{PayrollType: "monthly", StartDate: "2025-06-02"})
	assert.Error(t, err)

	_, err = f.svc.Generate(f.ctx, run.GenerateRunRequest{PayrollType: "weekly", StartDate: "02/06/2025"})
	assert.Error(t, err)
}

func TestGenerate_UsesTenantTimezoneAndThreshold(t *testing.T) {
	f := newFixture(t)
	limit := 2
	f.settings.settings = &tenant.Settings{
		TenantID:                       testTenantID,
		Timezone:                       "America/New_York",
		WeeklyOvertimeThresholdMinutes: 2100, // 35h
		DefaultOvertimeMultiplier:      decimal.NewFromInt(2),
		FinalizeExceptionLimit:         &limit,
	}
	f.addHourlyEmployee(testEmpID, 1000)
	// 40 hours, 5 over the tenant's 35-hour threshold at 2x.
	for day := 2; day <= 6; day++ {
		f.addShift(testEmpID, time.Date(2025, 6, day, 13, 0, 0, 0, time.UTC), 480, 0)
	}

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", resp.Timezone)
	assert.Equal(t, 2100, resp.TotalRegularMinutes)
	assert.Equal(t, 300, resp.TotalOvertimeMinutes)
	// 35h * 10.00 + 5h * 10.00 * 2
	assert.Equal(t, int64(45000), resp.TotalGrossPayCents)
}

// ========== LIFECYCLE ==========

func generateDraft(t *testing.T, f *fixture) run.RunResponse {
	f.addHourlyEmployee(testEmpID, 1500)
	f.addShift(testEmpID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 480, 0)

	resp, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)
	return resp
}

func TestFinalize_Draft(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	resp, err := f.svc.Finalize(f.ctx, draft.ID)
	require.NoError(t, err)

	assert.Equal(t, "finalized", resp.Status)
	assert.NotNil(t, resp.FinalizedAt)
}

func TestFinalize_Twice(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.Finalize(f.ctx, draft.ID)
	require.NoError(t, err)

	_, err = f.svc.Finalize(f.ctx, draft.ID)
	assert.ErrorIs(t, err, run.ErrRunNotDraft)
}

func TestFinalize_VoidedRun(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.Void(f.ctx, draft.ID, run.VoidRunRequest{Reason: "bad data"})
	require.NoError(t, err)

	_, err = f.svc.Finalize(f.ctx, draft.ID)
	assert.ErrorIs(t, err, run.ErrRunNotDraft)
}

func TestFinalize_ExceptionLimit(t *testing.T) {
	f := newFixture(t)
	limit := 0
	f.settings.settings = &tenant.Settings{
		TenantID:                       testTenantID,
		Timezone:                       "UTC",
		WeeklyOvertimeThresholdMinutes: 2400,
		DefaultOvertimeMultiplier:      decimal.NewFromFloat(1.5),
		FinalizeExceptionLimit:         &limit,
	}
	f.addHourlyEmployee(testEmpID, 1500)
	f.times.records = append(f.times.records, timesheet.TimeRecord{
		ID:         "open-shift",
		TenantID:   testTenantID,
		EmployeeID: testEmpID,
		ClockInAt:  time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	})

	draft, err := f.svc.Generate(f.ctx, run.GenerateRunRequest{
		PayrollType: "weekly",
		StartDate:   "2025-06-02",
	})
	require.NoError(t, err)

	_, err = f.svc.Finalize(f.ctx, draft.ID)
	assert.ErrorIs(t, err, run.ErrTooManyExceptions)
}

func TestVoid_RequiresReason(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.Void(f.ctx, draft.ID, run.VoidRunRequest{Reason: "  "})
	assert.Error(t, err)
}

func TestVoid_FinalizedRun(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.Finalize(f.ctx, draft.ID)
	require.NoError(t, err)

	_, err = f.svc.Void(f.ctx, draft.ID, run.VoidRunRequest{Reason: "too late"})
	assert.ErrorIs(t, err, run.ErrRunNotDraft)
}

func TestVoid_KeepsLineItems(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	resp, err := f.svc.Void(f.ctx, draft.ID, run.VoidRunRequest{Reason: "audit trail check"})
	require.NoError(t, err)

	assert.Equal(t, "void", resp.Status)
	require.NotNil(t, resp.VoidReason)
	assert.Equal(t, "audit trail check", *resp.VoidReason)
	assert.Len(t, resp.LineItems, 1)
}

func TestDelete_DraftOnly(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	require.NoError(t, f.svc.Delete(f.ctx, draft.ID))

	_, err := f.svc.Get(f.ctx, draft.ID)
	assert.ErrorIs(t, err, run.ErrRunNotFound)
}

func TestDelete_FinalizedRunRefused(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.Finalize(f.ctx, draft.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(f.ctx, draft.ID), run.ErrRunNotDraft)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(f.ctx, "0195f3a0-0000-7000-8000-00000000beef")
	assert.ErrorIs(t, err, run.ErrRunNotFound)
}

func TestGet_OtherTenantInvisible(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	otherCtx := authedContext(t, "0195f3a0-0000-7000-8000-0000000000ff", testUserID)
	_, err := f.svc.Get(otherCtx, draft.ID)
	assert.ErrorIs(t, err, run.ErrRunNotFound)
}

func TestList_Defaults(t *testing.T) {
	f := newFixture(t)
	generateDraft(t, f)

	resp, err := f.svc.List(f.ctx, run.RunFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Data, 1)
	assert.Empty(t, resp.Data[0].LineItems)
}

// ========== ADJUSTMENTS ==========

func TestAddAdjustment_RecomputesTotals(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f) // 8h * 15.00 = 12000

	_, err := f.svc.AddAdjustment(f.ctx, draft.ID, run.AddAdjustmentRequest{
		EmployeeID:  testEmpID,
		Type:        "bonus",
		AmountCents: 5000,
		Note:        "referral bonus",
	})
	require.NoError(t, err)

	_, err = f.svc.AddAdjustment(f.ctx, draft.ID, run.AddAdjustmentRequest{
		EmployeeID:  testEmpID,
		Type:        "deduction",
		AmountCents: 2000,
	})
	require.NoError(t, err)

	resp, err := f.svc.Get(f.ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12000+5000-2000), resp.TotalGrossPayCents)
	assert.Len(t, resp.Adjustments, 2)
}

func TestAddAdjustment_NonDraftRefused(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.Finalize(f.ctx, draft.ID)
	require.NoError(t, err)

	_, err = f.svc.AddAdjustment(f.ctx, draft.ID, run.AddAdjustmentRequest{
		EmployeeID:  testEmpID,
		Type:        "bonus",
		AmountCents: 5000,
	})
	assert.ErrorIs(t, err, run.ErrRunNotDraft)
}

func TestAddAdjustment_Validation(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	_, err := f.svc.AddAdjustment(f.ctx, draft.ID, run.AddAdjustmentRequest{
		EmployeeID:  testEmpID,
		Type:        "garnishment",
		AmountCents: 5000,
	})
	assert.Error(t, err)

	_, err = f.svc.AddAdjustment(f.ctx, draft.ID, run.AddAdjustmentRequest{
		EmployeeID:  testEmpID,
		Type:        "bonus",
		AmountCents: -100,
	})
	assert.Error(t, err)
}

func TestRemoveAdjustment_RecomputesTotals(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	created, err := f.svc.AddAdjustment(f.ctx, draft.ID, run.AddAdjustmentRequest{
		EmployeeID:  testEmpID,
		Type:        "bonus",
		AmountCents: 5000,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveAdjustment(f.ctx, draft.ID, created.ID))

	resp, err := f.svc.Get(f.ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), resp.TotalGrossPayCents)
	assert.Empty(t, resp.Adjustments)
}

func TestRemoveAdjustment_NotFound(t *testing.T) {
	f := newFixture(t)
	draft := generateDraft(t, f)

	err := f.svc.RemoveAdjustment(f.ctx, draft.ID, "0195f3a0-0000-7000-8000-00000000beef")
	assert.ErrorIs(t, err, run.ErrAdjustmentNotFound)
}
