package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
)

var errNotImplemented = errors.New("not implemented")

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEmployeeRepo) Create(context.Context, employee.Employee) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (f *fakeEmployeeRepo) Update(context.Context, string, employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (f *fakeEmployeeRepo) Delete(context.Context, string) error {
	return errNotImplemented
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	versions map[string][]payroll.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{versions: make(map[string][]payroll.Settings)}
}

func (f *fakeSettingsRepo) CurrentAsOf(_ context.Context, employeeID string, asOf time.Time) (payroll.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var current *payroll.Settings
	for i, v := range f.versions[employeeID] {
		if v.EffectiveFrom.After(asOf) {
			continue
		}
		if current == nil || v.EffectiveFrom.After(current.EffectiveFrom) {
			current = &f.versions[employeeID][i]
		}
	}
	if current == nil {
		return payroll.Settings{}, payroll.ErrPayrollSettingsNotFound
	}
	return *current, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s payroll.Settings) (payroll.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	versions := f.versions[s.EmployeeID]
	for i, v := range versions {
		if v.EffectiveFrom.Equal(s.EffectiveFrom) {
			s.ID = v.ID
			versions[i] = s
			return s, nil
		}
	}
	s.ID = fmt.Sprintf("settings-%d", len(versions)+1)
	f.versions[s.EmployeeID] = append(versions, s)
	return s, nil
}

type fakeAttendance struct {
	rows []attendance.Attendance
}

func (f *fakeAttendance) ListWorkedInRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.rows {
		if r.EmployeeID != employeeID || r.Date.Before(start) || r.Date.After(end) || !r.Status.IsWorking() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakePayrollRepo struct {
	mu        sync.Mutex
	records   map[string]payroll.PayrollRecord
	seq       int
	upserts   int
	statsCall [2]int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) Upsert(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++

	for id, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.PayPeriodStart.Equal(record.PayPeriodStart) &&
			existing.PayPeriodEnd.Equal(record.PayPeriodEnd) {
			record.ID = id
			record.GeneratedAt = existing.GeneratedAt
			record.ApprovedAt = existing.ApprovedAt
			record.PaidAt = existing.PaidAt
			record.Notes = existing.Notes
			record.Status = payroll.PayrollStatusCalculated
			f.records[id] = record
			return record, nil
		}
	}

	f.seq++
	record.ID = fmt.Sprintf("payroll-%d", f.seq)
	record.GeneratedAt = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	record.Status = payroll.PayrollStatusCalculated
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, id string, status payroll.PayrollStatus, notes *string, at time.Time) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	rec.Status = status
	if notes != nil {
		rec.Notes = notes
	}
	switch status {
	case payroll.PayrollStatusApproved:
		rec.ApprovedAt = &at
	case payroll.PayrollStatusPaid:
		rec.PaidAt = &at
	}
	f.records[id] = rec
	return rec, nil
}

func (f *fakePayrollRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepo) Stats(_ context.Context, year, month int) (payroll.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statsCall = [2]int{year, month}
	return payroll.Stats{Year: year, Month: month, TotalRecords: int64(len(f.records))}, nil
}

func (f *fakePayrollRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}
