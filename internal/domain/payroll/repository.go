package payroll

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
)

// SettingsRepository stores versioned payroll settings.
type SettingsRepository interface {
	// CurrentAsOf returns the version with the latest effective_from on or before asOf,
	// or ErrPayrollSettingsNotFound.
	CurrentAsOf(ctx context.Context, employeeID string, asOf time.Time) (Settings, error)
	// Upsert stores a version; a second write for the same effective_from replaces it.
	Upsert(ctx context.Context, settings Settings) (Settings, error)
}

// SettingsLookup resolves the settings that apply to an employee on a date,
// falling back to DefaultSettings.
type SettingsLookup interface {
	CurrentAsOf(ctx context.Context, employeeID string, asOf time.Time) (Settings, error)
}

// AttendanceSource is the read side of the attendance ledger used by the calculator.
type AttendanceSource interface {
	ListWorkedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error)
}

type PayrollRepository interface {
	// Upsert inserts the record or, for an existing (employee, period), overwrites the
	// derived fields and resets status to Calculated. approved_at/paid_at are kept.
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	// UpdateStatus sets status and notes, stamping approved_at or paid_at with at.
	UpdateStatus(ctx context.Context, id string, status PayrollStatus, notes *string, at time.Time) (PayrollRecord, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, year, month int) (Stats, error)
}
