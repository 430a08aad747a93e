package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
)

type settingsLookup struct {
	repo payroll.SettingsRepository
}

// NewSettingsLookup resolves the current settings version, falling back to
// payroll.DefaultSettings when an employee has none.
func NewSettingsLookup(repo payroll.SettingsRepository) payroll.SettingsLookup {
	return &settingsLookup{repo: repo}
}

func (l *settingsLookup) CurrentAsOf(ctx context.Context, employeeID string, asOf time.Time) (payroll.Settings, error) {
	settings, err := l.repo.CurrentAsOf(ctx, employeeID, asOf)
	if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
		defaults := payroll.DefaultSettings()
		defaults.EmployeeID = employeeID
		return defaults, nil
	}
	if err != nil {
		return payroll.Settings{}, err
	}
	return settings, nil
}
