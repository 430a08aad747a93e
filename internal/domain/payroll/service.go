package payroll

import (
	"context"
	"io"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/export"
)

type PayrollService interface {
	// Calculation
	CalculatePayroll(ctx context.Context, req CalculatePayrollRequest) (CalculatePayrollResponse, error)
	ProcessPayroll(ctx context.Context, req ProcessPayrollRequest) (ProcessPayrollResponse, error)

	// Records
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, error)
	UpdatePayrollStatus(ctx context.Context, id string, req UpdatePayrollStatusRequest) (PayrollRecordResponse, error)
	DeletePayrollRecord(ctx context.Context, id string) error
	GetPayrollStats(ctx context.Context, year, month *int) (PayrollStatsResponse, error)
	ExportPayroll(ctx context.Context, filter PayrollFilter, format export.Format, w io.Writer) error

	// Settings
	GetPayrollSettings(ctx context.Context, employeeID string) (PayrollSettingsResponse, error)
	UpdatePayrollSettings(ctx context.Context, employeeID string, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)
}
