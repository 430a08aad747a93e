package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollSettingsRepository struct {
	db *database.DB
}

func NewPayrollSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &payrollSettingsRepository{db: db}
}

const payrollSettingsColumns = `id, employee_id, hourly_rate, overtime_rate, regular_hours_per_day,
	working_days_per_month, bonus, deductions, effective_from, created_at, updated_at`

func scanPayrollSettings(row pgx.Row) (payroll.Settings, error) {
	var s payroll.Settings
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.HourlyRate, &s.OvertimeRate, &s.RegularHoursPerDay,
		&s.WorkingDaysPerMonth, &s.Bonus, &s.Deductions, &s.EffectiveFrom, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *payrollSettingsRepository) CurrentAsOf(ctx context.Context, employeeID string, asOf time.Time) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollSettingsColumns + `
		FROM payroll_settings
		WHERE employee_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1
	`

	s, err := scanPayrollSettings(q.QueryRow(ctx, query, employeeID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Settings{}, payroll.ErrPayrollSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollSettingsRepository) Upsert(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to generate settings id: %w", err)
	}

	query := `
		INSERT INTO payroll_settings (
			id, employee_id, hourly_rate, overtime_rate, regular_hours_per_day,
			working_days_per_month, bonus, deductions, effective_from
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, effective_from) DO UPDATE SET
			hourly_rate = EXCLUDED.hourly_rate,
			overtime_rate = EXCLUDED.overtime_rate,
			regular_hours_per_day = EXCLUDED.regular_hours_per_day,
			working_days_per_month = EXCLUDED.working_days_per_month,
			bonus = EXCLUDED.bonus,
			deductions = EXCLUDED.deductions,
			updated_at = NOW()
		RETURNING ` + payrollSettingsColumns

	s, err := scanPayrollSettings(q.QueryRow(ctx, query,
		id.String(), settings.EmployeeID, settings.HourlyRate, settings.OvertimeRate, settings.RegularHoursPerDay,
		settings.WorkingDaysPerMonth, settings.Bonus, settings.Deductions, settings.EffectiveFrom,
	))
	if err != nil {
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return payroll.Settings{}, employee.ErrEmployeeNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}
