package payroll

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	settingsRepo payroll.SettingsRepository
	settings     payroll.SettingsLookup
	attendance   payroll.AttendanceSource
	employeeRepo employee.EmployeeRepository
	workers      int
	now          func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	settingsRepo payroll.SettingsRepository,
	attendance payroll.AttendanceSource,
	employeeRepo employee.EmployeeRepository,
	workers int,
) payroll.PayrollService {
	if workers < 1 {
		workers = 1
	}
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		settingsRepo: settingsRepo,
		settings:     NewSettingsLookup(settingsRepo),
		attendance:   attendance,
		employeeRepo: employeeRepo,
		workers:      workers,
		now:          time.Now,
	}
}

// ========== CALCULATION ==========

// CalculatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.CalculatePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}
	start, end, errs := validator.DateRange(req.StartDate, req.EndDate)
	if len(errs) > 0 {
		return payroll.CalculatePayrollResponse{}, errs
	}

	record, summary, err := s.calculate(ctx, req.EmployeeID, start, end)
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	return payroll.CalculatePayrollResponse{
		Payroll: payroll.NewPayrollRecordResponse(record),
		AttendanceSummary: payroll.AttendanceSummaryResponse{
			WorkingDays:   summary.WorkingDays,
			TotalHours:    summary.TotalHours,
			RegularHours:  summary.RegularHours,
			OvertimeHours: summary.OvertimeHours,
		},
	}, nil
}

// calculate prices one employee's period and upserts the record. An inverted
// range matches no attendance and yields a zero-pay record.
func (s *PayrollServiceImpl) calculate(ctx context.Context, employeeID string, start, end time.Time) (payroll.PayrollRecord, payroll.AttendanceSummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.PayrollRecord{}, payroll.AttendanceSummary{}, err
	}

	settings, err := s.settings.CurrentAsOf(ctx, employeeID, utils.DateOf(s.now()))
	if err != nil {
		return payroll.PayrollRecord{}, payroll.AttendanceSummary{}, err
	}

	days, err := s.attendance.ListWorkedInRange(ctx, employeeID, start, end)
	if err != nil {
		return payroll.PayrollRecord{}, payroll.AttendanceSummary{}, err
	}

	computation := payroll.Compute(settings, days)
	saved, err := s.payrollRepo.Upsert(ctx, computation.Record(employeeID, start, end, settings))
	if err != nil {
		return payroll.PayrollRecord{}, payroll.AttendanceSummary{}, err
	}

	slog.Info("payroll calculated",
		"employee_id", employeeID,
		"period_start", start.Format(validator.DateLayout),
		"period_end", end.Format(validator.DateLayout),
		"net_pay", saved.NetPay.String(),
	)
	return saved, computation.Summary, nil
}

// ProcessPayroll implements payroll.PayrollService. Employees are calculated
// independently; one failure does not stop the others.
func (s *PayrollServiceImpl) ProcessPayroll(ctx context.Context, req payroll.ProcessPayrollRequest) (payroll.ProcessPayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ProcessPayrollResponse{}, err
	}
	start, end, errs := validator.DateRange(req.StartDate, req.EndDate)
	if len(errs) > 0 {
		return payroll.ProcessPayrollResponse{}, errs
	}

	ids, err := s.processTargets(ctx, req.EmployeeIDs)
	if err != nil {
		return payroll.ProcessPayrollResponse{}, err
	}

	records := make([]*payroll.PayrollRecord, len(ids))
	failures := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, _, err := s.calculate(ctx, id, start, end)
			if err != nil {
				failures[i] = err
				return nil
			}
			records[i] = &record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.ProcessPayrollResponse{}, err
	}

	resp := payroll.ProcessPayrollResponse{
		Records: make([]payroll.PayrollRecordResponse, 0, len(ids)),
	}
	for i, id := range ids {
		if failures[i] != nil {
			slog.Warn("payroll calculation failed", "employee_id", id, "error", failures[i])
			resp.Failures = append(resp.Failures, payroll.ProcessFailure{EmployeeID: id, Error: failures[i].Error()})
			continue
		}
		resp.Records = append(resp.Records, payroll.NewPayrollRecordResponse(*records[i]))
	}
	resp.Processed = len(resp.Records)
	resp.Failed = len(resp.Failures)

	slog.Info("payroll processed", "processed", resp.Processed, "failed", resp.Failed)
	return resp, nil
}

// processTargets returns the requested ids without duplicates, or every Active employee.
func (s *PayrollServiceImpl) processTargets(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		seen := make(map[string]struct{}, len(requested))
		ids := make([]string, 0, len(requested))
		for _, id := range requested {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		return ids, nil
	}

	active := employee.StatusActive
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Status: &active})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// ========== RECORDS ==========

// GetPayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

// ListPayrollRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, payroll.ErrInvalidPeriod
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, payroll.NewPayrollRecordResponse(r))
	}
	return resp, nil
}

// UpdatePayrollStatus implements payroll.PayrollService. Any target in
// {Calculated, Approved, Paid} is accepted from any current status.
func (s *PayrollServiceImpl) UpdatePayrollStatus(ctx context.Context, id string, req payroll.UpdatePayrollStatusRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	status := payroll.PayrollStatus(req.Status)
	updated, err := s.payrollRepo.UpdateStatus(ctx, id, status, req.Notes, s.now())
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("payroll status updated", "payroll_id", id, "status", status)
	return payroll.NewPayrollRecordResponse(updated), nil
}

// DeletePayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("payroll record deleted", "payroll_id", id)
	return nil
}

// GetPayrollStats implements payroll.PayrollService. Missing year or month
// default to the current one.
func (s *PayrollServiceImpl) GetPayrollStats(ctx context.Context, year, month *int) (payroll.PayrollStatsResponse, error) {
	now := s.now()
	y, m := now.Year(), int(now.Month())
	if year != nil {
		y = *year
	}
	if month != nil {
		m = *month
	}
	if m < 1 || m > 12 || y < 1 {
		return payroll.PayrollStatsResponse{}, payroll.ErrInvalidPeriod
	}

	stats, err := s.payrollRepo.Stats(ctx, y, m)
	if err != nil {
		return payroll.PayrollStatsResponse{}, err
	}
	stats.Year, stats.Month = y, m
	return payroll.NewPayrollStatsResponse(stats), nil
}

// ExportPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayroll(ctx context.Context, filter payroll.PayrollFilter, format export.Format, w io.Writer) error {
	if format != export.FormatCSV && format != export.FormatXLSX {
		return export.ErrUnsupportedFormat
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return payroll.ErrInvalidPeriod
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	if format == export.FormatXLSX {
		return export.WriteXLSX(w, payrollSheet(records))
	}
	rows := make([]exportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, newExportRow(r))
	}
	return export.WriteCSV(w, &rows)
}

// ========== SETTINGS ==========

// GetPayrollSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollSettings(ctx context.Context, employeeID string) (payroll.PayrollSettingsResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	settings, err := s.settings.CurrentAsOf(ctx, employeeID, utils.DateOf(s.now()))
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}
	return payroll.NewPayrollSettingsResponse(employeeID, settings), nil
}

// UpdatePayrollSettings implements payroll.PayrollService. The change is stored as
// a new version effective today; a second update on the same day replaces it.
func (s *PayrollServiceImpl) UpdatePayrollSettings(ctx context.Context, employeeID string, req payroll.UpdatePayrollSettingsRequest) (payroll.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	today := utils.DateOf(s.now())
	current, err := s.settings.CurrentAsOf(ctx, employeeID, today)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	next := req.Apply(current)
	next.ID = ""
	next.EmployeeID = employeeID
	next.EffectiveFrom = today
	next.IsDefault = false

	saved, err := s.settingsRepo.Upsert(ctx, next)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	slog.Info("payroll settings updated", "employee_id", employeeID, "effective_from", today.Format(validator.DateLayout))
	return payroll.NewPayrollSettingsResponse(employeeID, saved), nil
}
