package payroll

import "errors"

var (
	ErrPayrollSettingsNotFound = errors.New("payroll settings not found")
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrInvalidPayrollStatus    = errors.New("invalid payroll status")
	ErrCannotDeletePaidRecord  = errors.New("cannot delete paid payroll record")
)
