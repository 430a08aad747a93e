package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `pr.id, pr.employee_id, pr.pay_period_start, pr.pay_period_end,
	pr.regular_hours, pr.overtime_hours, pr.total_hours, pr.hourly_rate, pr.overtime_rate,
	pr.regular_pay, pr.overtime_pay, pr.gross_pay, pr.bonus, pr.deductions, pr.net_pay,
	pr.status, pr.notes, pr.generated_at, pr.approved_at, pr.paid_at, pr.updated_at,
	e.name AS employee_name, e.department, e.position`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PayPeriodStart, &rec.PayPeriodEnd,
		&rec.RegularHours, &rec.OvertimeHours, &rec.TotalHours, &rec.HourlyRate, &rec.OvertimeRate,
		&rec.RegularPay, &rec.OvertimePay, &rec.GrossPay, &rec.Bonus, &rec.Deductions, &rec.NetPay,
		&rec.Status, &rec.Notes, &rec.GeneratedAt, &rec.ApprovedAt, &rec.PaidAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.Department, &rec.Position,
	)
	return rec, err
}

// Upsert keys on (employee_id, pay_period_start, pay_period_end). A recalculation
// overwrites every derived field and resets status, leaving generated_at,
// approved_at and paid_at untouched.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	query := `
		WITH pr AS (
			INSERT INTO payroll_records (
				id, employee_id, pay_period_start, pay_period_end,
				regular_hours, overtime_hours, total_hours, hourly_rate, overtime_rate,
				regular_pay, overtime_pay, gross_pay, bonus, deductions, net_pay, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			ON CONFLICT (employee_id, pay_period_start, pay_period_end) DO UPDATE SET
				regular_hours = EXCLUDED.regular_hours,
				overtime_hours = EXCLUDED.overtime_hours,
				total_hours = EXCLUDED.total_hours,
				hourly_rate = EXCLUDED.hourly_rate,
				overtime_rate = EXCLUDED.overtime_rate,
				regular_pay = EXCLUDED.regular_pay,
				overtime_pay = EXCLUDED.overtime_pay,
				gross_pay = EXCLUDED.gross_pay,
				bonus = EXCLUDED.bonus,
				deductions = EXCLUDED.deductions,
				net_pay = EXCLUDED.net_pay,
				status = EXCLUDED.status,
				updated_at = NOW()
			RETURNING *
		)
		SELECT ` + payrollRecordColumns + `
		FROM pr
		JOIN employees e ON pr.employee_id = e.id
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query,
		id.String(), record.EmployeeID, record.PayPeriodStart, record.PayPeriodEnd,
		record.RegularHours, record.OvertimeHours, record.TotalHours, record.HourlyRate, record.OvertimeRate,
		record.RegularPay, record.OvertimePay, record.GrossPay, record.Bonus, record.Deductions, record.NetPay,
		payroll.PayrollStatusCalculated,
	))
	if err != nil {
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return payroll.PayrollRecord{}, employee.ErrEmployeeNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND pr.pay_period_start >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND pr.pay_period_end <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	query += " ORDER BY pr.pay_period_start DESC, e.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, notes *string, at time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH pr AS (
			UPDATE payroll_records SET
				status = $2,
				notes = COALESCE($3, notes),
				approved_at = CASE WHEN $2 = 'Approved' THEN $4 ELSE approved_at END,
				paid_at = CASE WHEN $2 = 'Paid' THEN $4 ELSE paid_at END,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + payrollRecordColumns + `
		FROM pr
		JOIN employees e ON pr.employee_id = e.id
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, string(status), notes, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

func (r *payrollRepository) Stats(ctx context.Context, year, month int) (payroll.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total_records,
			COUNT(*) FILTER (WHERE status = 'Draft') AS draft_count,
			COUNT(*) FILTER (WHERE status = 'Calculated') AS calculated_count,
			COUNT(*) FILTER (WHERE status = 'Approved') AS approved_count,
			COUNT(*) FILTER (WHERE status = 'Paid') AS paid_count,
			COALESCE(SUM(gross_pay) FILTER (WHERE status IN ('Approved', 'Paid')), 0) AS total_gross_pay,
			COALESCE(SUM(net_pay) FILTER (WHERE status IN ('Approved', 'Paid')), 0) AS total_net_pay,
			COALESCE(SUM(total_hours) FILTER (WHERE status IN ('Approved', 'Paid')), 0) AS total_hours,
			COALESCE(ROUND(AVG(net_pay) FILTER (WHERE status IN ('Approved', 'Paid')), 2), 0) AS average_net_pay
		FROM payroll_records
		WHERE pay_period_start BETWEEN $1 AND $2
	`

	first, last := utils.MonthBounds(year, time.Month(month))

	var s payroll.Stats
	err := q.QueryRow(ctx, query, first, last).Scan(
		&s.TotalRecords, &s.Draft, &s.Calculated, &s.Approved, &s.Paid,
		&s.TotalGrossPay, &s.TotalNetPay, &s.TotalHours, &s.AverageNetPay,
	)
	if err != nil {
		return payroll.Stats{}, fmt.Errorf("failed to get payroll stats: %w", err)
	}

	s.Year = year
	s.Month = month
	return s, nil
}
