package payroll

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

type CalculatePayrollRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (r *CalculatePayrollRequest) Validate() error {
	return validator.Struct(r)
}

type AttendanceSummaryResponse struct {
	WorkingDays   int             `json:"working_days"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type CalculatePayrollResponse struct {
	Payroll           PayrollRecordResponse     `json:"payroll"`
	AttendanceSummary AttendanceSummaryResponse `json:"attendance_summary"`
}

type ProcessPayrollRequest struct {
	StartDate   string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	EmployeeIDs []string `json:"employee_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (r *ProcessPayrollRequest) Validate() error {
	return validator.Struct(r)
}

type ProcessFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type ProcessPayrollResponse struct {
	Processed int                     `json:"processed"`
	Failed    int                     `json:"failed"`
	Records   []PayrollRecordResponse `json:"records"`
	Failures  []ProcessFailure        `json:"failures,omitempty"`
}

// ========== RECORD DTOs ==========

type PayrollFilter struct {
	EmployeeID *string
	Status     *PayrollStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

type UpdatePayrollStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdatePayrollStatusRequest) Validate() error {
	errs, err := validator.Merge(nil, validator.Struct(r))
	if err != nil {
		return err
	}
	if r.Status != "" && !PayrollStatus(r.Status).IsTransitionTarget() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Calculated, Approved, Paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   *string         `json:"employee_name,omitempty"`
	Department     *string         `json:"department,omitempty"`
	Position       *string         `json:"position,omitempty"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	RegularHours   decimal.Decimal `json:"regular_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	OvertimeRate   decimal.Decimal `json:"overtime_rate"`
	RegularPay     decimal.Decimal `json:"regular_pay"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	Bonus          decimal.Decimal `json:"bonus"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetPay         decimal.Decimal `json:"net_pay"`
	Status         string          `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
	GeneratedAt    time.Time       `json:"generated_at"`
	ApprovedAt     *time.Time      `json:"approved_at"`
	PaidAt         *time.Time      `json:"paid_at"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Department:     r.Department,
		Position:       r.Position,
		PayPeriodStart: r.PayPeriodStart.Format(validator.DateLayout),
		PayPeriodEnd:   r.PayPeriodEnd.Format(validator.DateLayout),
		RegularHours:   r.RegularHours,
		OvertimeHours:  r.OvertimeHours,
		TotalHours:     r.TotalHours,
		HourlyRate:     r.HourlyRate,
		OvertimeRate:   r.OvertimeRate,
		RegularPay:     r.RegularPay,
		OvertimePay:    r.OvertimePay,
		GrossPay:       r.GrossPay,
		Bonus:          r.Bonus,
		Deductions:     r.Deductions,
		NetPay:         r.NetPay,
		Status:         string(r.Status),
		Notes:          r.Notes,
		GeneratedAt:    r.GeneratedAt,
		ApprovedAt:     r.ApprovedAt,
		PaidAt:         r.PaidAt,
	}
}

type PayrollStatsResponse struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalRecords  int64           `json:"total_records"`
	Draft         int64           `json:"draft"`
	Calculated    int64           `json:"calculated"`
	Approved      int64           `json:"approved"`
	Paid          int64           `json:"paid"`
	TotalGrossPay decimal.Decimal `json:"total_gross_pay"`
	TotalNetPay   decimal.Decimal `json:"total_net_pay"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	AverageNetPay decimal.Decimal `json:"average_net_pay"`
}

func NewPayrollStatsResponse(s Stats) PayrollStatsResponse {
	return PayrollStatsResponse{
		Year:          s.Year,
		Month:         s.Month,
		TotalRecords:  s.TotalRecords,
		Draft:         s.Draft,
		Calculated:    s.Calculated,
		Approved:      s.Approved,
		Paid:          s.Paid,
		TotalGrossPay: s.TotalGrossPay,
		TotalNetPay:   s.TotalNetPay,
		TotalHours:    s.TotalHours,
		AverageNetPay: s.AverageNetPay,
	}
}

// ========== SETTINGS DTOs ==========

type PayrollSettingsResponse struct {
	EmployeeID          string          `json:"employee_id"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
	RegularHoursPerDay  decimal.Decimal `json:"regular_hours_per_day"`
	WorkingDaysPerMonth int             `json:"working_days_per_month"`
	Bonus               decimal.Decimal `json:"bonus"`
	Deductions          decimal.Decimal `json:"deductions"`
	EffectiveFrom       *string         `json:"effective_from"`
	IsDefault           bool            `json:"is_default"`
}

func NewPayrollSettingsResponse(employeeID string, s Settings) PayrollSettingsResponse {
	resp := PayrollSettingsResponse{
		EmployeeID:          employeeID,
		HourlyRate:          s.HourlyRate,
		OvertimeRate:        s.OvertimeRate,
		RegularHoursPerDay:  s.RegularHoursPerDay,
		WorkingDaysPerMonth: s.WorkingDaysPerMonth,
		Bonus:               s.Bonus,
		Deductions:          s.Deductions,
		IsDefault:           s.IsDefault,
	}
	if !s.IsDefault && !s.EffectiveFrom.IsZero() {
		effective := s.EffectiveFrom.Format(validator.DateLayout)
		resp.EffectiveFrom = &effective
	}
	return resp
}

type UpdatePayrollSettingsRequest struct {
	HourlyRate          *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeRate        *decimal.Decimal `json:"overtime_rate,omitempty"`
	RegularHoursPerDay  *decimal.Decimal `json:"regular_hours_per_day,omitempty"`
	WorkingDaysPerMonth *int             `json:"working_days_per_month,omitempty" validate:"omitempty,min=1,max=31"`
	Bonus               *decimal.Decimal `json:"bonus,omitempty"`
	Deductions          *decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdatePayrollSettingsRequest) Validate() error {
	errs, err := validator.Merge(nil, validator.Struct(r))
	if err != nil {
		return err
	}

	nonNegative := []struct {
		field string
		value *decimal.Decimal
	}{
		{"hourly_rate", r.HourlyRate},
		{"overtime_rate", r.OvertimeRate},
		{"bonus", r.Bonus},
		{"deductions", r.Deductions},
	}
	for _, f := range nonNegative {
		if f.value != nil && f.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: f.field, Message: "must be non-negative"})
		}
	}
	if r.RegularHoursPerDay != nil && (!r.RegularHoursPerDay.IsPositive() || r.RegularHoursPerDay.GreaterThan(decimal.NewFromInt(24))) {
		errs = append(errs, validator.ValidationError{Field: "regular_hours_per_day", Message: "must be greater than 0 and at most 24"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overlays the provided fields onto base.
func (r *UpdatePayrollSettingsRequest) Apply(base Settings) Settings {
	if r.HourlyRate != nil {
		base.HourlyRate = *r.HourlyRate
	}
	if r.OvertimeRate != nil {
		base.OvertimeRate = *r.OvertimeRate
	}
	if r.RegularHoursPerDay != nil {
		base.RegularHoursPerDay = *r.RegularHoursPerDay
	}
	if r.WorkingDaysPerMonth != nil {
		base.WorkingDaysPerMonth = *r.WorkingDaysPerMonth
	}
	if r.Bonus != nil {
		base.Bonus = *r.Bonus
	}
	if r.Deductions != nil {
		base.Deductions = *r.Deductions
	}
	return base
}
