package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft      PayrollStatus = "Draft"
	PayrollStatusCalculated PayrollStatus = "Calculated"
	PayrollStatusApproved   PayrollStatus = "Approved"
	PayrollStatusPaid       PayrollStatus = "Paid"
)

func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusDraft, PayrollStatusCalculated, PayrollStatusApproved, PayrollStatusPaid:
		return true
	}
	return false
}

// IsTransitionTarget reports whether a record may be explicitly moved to s.
// Draft is only the implicit pre-calculation state.
func (s PayrollStatus) IsTransitionTarget() bool {
	return s == PayrollStatusCalculated || s == PayrollStatusApproved || s == PayrollStatusPaid
}

// Settings is one version of an employee's pay configuration.
type Settings struct {
	ID                  string
	EmployeeID          string
	HourlyRate          decimal.Decimal
	OvertimeRate        decimal.Decimal
	RegularHoursPerDay  decimal.Decimal
	WorkingDaysPerMonth int
	Bonus               decimal.Decimal
	Deductions          decimal.Decimal
	EffectiveFrom       time.Time
	IsDefault           bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultSettings is used when an employee has no settings version yet.
func DefaultSettings() Settings {
	return Settings{
		HourlyRate:          decimal.RequireFromString("15.00"),
		OvertimeRate:        decimal.RequireFromString("22.50"),
		RegularHoursPerDay:  decimal.RequireFromString("8.00"),
		WorkingDaysPerMonth: 22,
		Bonus:               decimal.Zero,
		Deductions:          decimal.Zero,
		IsDefault:           true,
	}
}

// PayrollRecord - one employee's pay for one inclusive pay period
type PayrollRecord struct {
	ID             string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	RegularHours   decimal.Decimal
	OvertimeHours  decimal.Decimal
	TotalHours     decimal.Decimal
	HourlyRate     decimal.Decimal
	OvertimeRate   decimal.Decimal
	RegularPay     decimal.Decimal
	OvertimePay    decimal.Decimal
	GrossPay       decimal.Decimal
	Bonus          decimal.Decimal
	Deductions     decimal.Decimal
	NetPay         decimal.Decimal
	Status         PayrollStatus
	Notes          *string
	GeneratedAt    time.Time
	ApprovedAt     *time.Time
	PaidAt         *time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
	Position     *string
}

// AttendanceSummary - what a calculation aggregated
type AttendanceSummary struct {
	WorkingDays   int
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
}

// Stats - aggregates for one calendar month of pay_period_start
type Stats struct {
	Year          int
	Month         int
	TotalRecords  int64
	Draft         int64
	Calculated    int64
	Approved      int64
	Paid          int64
	TotalGrossPay decimal.Decimal
	TotalNetPay   decimal.Decimal
	TotalHours    decimal.Decimal
	AverageNetPay decimal.Decimal
}
