package payroll

import (
	"reflect"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type exportRow struct {
	EmployeeID     string `csv:"employee_id"`
	EmployeeName   string `csv:"employee_name"`
	Department     string `csv:"department"`
	Position       string `csv:"position"`
	PayPeriodStart string `csv:"pay_period_start"`
	PayPeriodEnd   string `csv:"pay_period_end"`
	RegularHours   string `csv:"regular_hours"`
	OvertimeHours  string `csv:"overtime_hours"`
	TotalHours     string `csv:"total_hours"`
	HourlyRate     string `csv:"hourly_rate"`
	OvertimeRate   string `csv:"overtime_rate"`
	RegularPay     string `csv:"regular_pay"`
	OvertimePay    string `csv:"overtime_pay"`
	GrossPay       string `csv:"gross_pay"`
	Bonus          string `csv:"bonus"`
	Deductions     string `csv:"deductions"`
	NetPay         string `csv:"net_pay"`
	Status         string `csv:"status"`
}

// exportHeaders mirrors the csv tags so both formats share one header row.
var exportHeaders = csvHeaders(reflect.TypeFor[exportRow]())

func csvHeaders(t reflect.Type) []string {
	headers := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		headers = append(headers, t.Field(i).Tag.Get("csv"))
	}
	return headers
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newExportRow(r payroll.PayrollRecord) exportRow {
	return exportRow{
		EmployeeID:     r.EmployeeID,
		EmployeeName:   deref(r.EmployeeName),
		Department:     deref(r.Department),
		Position:       deref(r.Position),
		PayPeriodStart: r.PayPeriodStart.Format(validator.DateLayout),
		PayPeriodEnd:   r.PayPeriodEnd.Format(validator.DateLayout),
		RegularHours:   r.RegularHours.StringFixed(2),
		OvertimeHours:  r.OvertimeHours.StringFixed(2),
		TotalHours:     r.TotalHours.StringFixed(2),
		HourlyRate:     r.HourlyRate.StringFixed(2),
		OvertimeRate:   r.OvertimeRate.StringFixed(2),
		RegularPay:     r.RegularPay.StringFixed(2),
		OvertimePay:    r.OvertimePay.StringFixed(2),
		GrossPay:       r.GrossPay.StringFixed(2),
		Bonus:          r.Bonus.StringFixed(2),
		Deductions:     r.Deductions.StringFixed(2),
		NetPay:         r.NetPay.StringFixed(2),
		Status:         string(r.Status),
	}
}

// payrollSheet lays records out for a spreadsheet; amounts stay numeric.
func payrollSheet(records []payroll.PayrollRecord) export.Sheet {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.EmployeeID,
			deref(r.EmployeeName),
			deref(r.Department),
			deref(r.Position),
			r.PayPeriodStart.Format(validator.DateLayout),
			r.PayPeriodEnd.Format(validator.DateLayout),
			r.RegularHours.InexactFloat64(),
			r.OvertimeHours.InexactFloat64(),
			r.TotalHours.InexactFloat64(),
			r.HourlyRate.InexactFloat64(),
			r.OvertimeRate.InexactFloat64(),
			r.RegularPay.InexactFloat64(),
			r.OvertimePay.InexactFloat64(),
			r.GrossPay.InexactFloat64(),
			r.Bonus.InexactFloat64(),
			r.Deductions.InexactFloat64(),
			r.NetPay.InexactFloat64(),
			string(r.Status),
		})
	}
	return export.Sheet{Name: "Payroll", Headers: exportHeaders, Rows: rows}
}
