package payroll

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Computation is the result of applying one settings version to a period's attendance.
type Computation struct {
	Summary     AttendanceSummary
	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	GrossPay    decimal.Decimal
	NetPay      decimal.Decimal
}

// Compute aggregates attendance into regular and overtime hours and prices them.
// Overtime is capped per day: each day contributes min(h, R) regular hours and
// max(0, h-R) overtime hours. Days whose status is not a working status are
// skipped whatever hours they carry. Net pay has no floor.
func Compute(settings Settings, days []attendance.Attendance) Computation {
	threshold := settings.RegularHoursPerDay
	regular := decimal.Zero
	overtime := decimal.Zero
	workingDays := 0

	for _, day := range days {
		if !day.Status.IsWorking() {
			continue
		}
		workingDays++

		h := day.HoursWorked
		if h.IsNegative() {
			h = decimal.Zero
		}
		if h.LessThanOrEqual(threshold) {
			regular = regular.Add(h)
			continue
		}
		regular = regular.Add(threshold)
		overtime = overtime.Add(h.Sub(threshold))
	}

	regularPay := regular.Mul(settings.HourlyRate).Round(2)
	overtimePay := overtime.Mul(settings.OvertimeRate).Round(2)
	gross := regularPay.Add(overtimePay).Add(settings.Bonus)
	net := gross.Sub(settings.Deductions)

	return Computation{
		Summary: AttendanceSummary{
			WorkingDays:   workingDays,
			TotalHours:    regular.Add(overtime),
			RegularHours:  regular,
			OvertimeHours: overtime,
		},
		RegularPay:  regularPay,
		OvertimePay: overtimePay,
		GrossPay:    gross,
		NetPay:      net,
	}
}

// Record builds the Calculated payroll record for the period, snapshotting the rates used.
func (c Computation) Record(employeeID string, start, end time.Time, settings Settings) PayrollRecord {
	return PayrollRecord{
		EmployeeID:     employeeID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		RegularHours:   c.Summary.RegularHours,
		OvertimeHours:  c.Summary.OvertimeHours,
		TotalHours:     c.Summary.TotalHours,
		HourlyRate:     settings.HourlyRate,
		OvertimeRate:   settings.OvertimeRate,
		RegularPay:     c.RegularPay,
		OvertimePay:    c.OvertimePay,
		GrossPay:       c.GrossPay,
		Bonus:          settings.Bonus,
		Deductions:     settings.Deductions,
		NetPay:         c.NetPay,
		Status:         PayrollStatusCalculated,
	}
}
