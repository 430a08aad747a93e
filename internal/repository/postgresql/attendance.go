package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance (id, employee_id, date, check_in, check_out, status, hours_worked, notes)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			status = EXCLUDED.status,
			hours_worked = EXCLUDED.hours_worked,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, employee_id, date, check_in::text, check_out::text, status, hours_worked, notes, created_at, updated_at
	`

	var out attendance.Attendance
	err = q.QueryRow(ctx, query,
		id.String(), a.EmployeeID, a.Date, a.CheckIn, a.CheckOut, a.Status, a.HoursWorked, a.Notes,
	).Scan(
		&out.ID, &out.EmployeeID, &out.Date, &out.CheckIn, &out.CheckOut, &out.Status,
		&out.HoursWorked, &out.Notes, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return out, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.check_in::text, a.check_out::text, a.status,
			   a.hours_worked, a.notes, a.created_at, a.updated_at,
			   e.name AS employee_name, e.department
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.date = $1
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Status,
			&a.HoursWorked, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName, &a.Department,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// ListRosterByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRosterByDate(ctx context.Context, date time.Time) ([]attendance.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.name, e.department, e.position, e.status,
			   a.id, a.check_in::text, a.check_out::text, a.status,
			   COALESCE(a.hours_worked, 0), a.notes
		FROM employees e
		LEFT JOIN attendance a ON a.employee_id = e.id AND a.date = $1
		WHERE e.status = $2
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, date, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance roster: %w", err)
	}
	defer rows.Close()

	roster := make([]attendance.RosterEntry, 0)
	for rows.Next() {
		var e attendance.RosterEntry
		if err := rows.Scan(
			&e.EmployeeID, &e.Name, &e.Department, &e.Position, &e.EmployeeStatus,
			&e.AttendanceID, &e.CheckIn, &e.CheckOut, &e.Status,
			&e.HoursWorked, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance roster: %w", err)
		}
		roster = append(roster, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance roster: %w", err)
	}

	return roster, nil
}

// ListWorkedInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListWorkedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	working := attendance.WorkingStatuses()
	statuses := make([]string, len(working))
	for i, s := range working {
		statuses[i] = string(s)
	}

	query := `
		SELECT id, employee_id, date, check_in::text, check_out::text, status, hours_worked, notes, created_at, updated_at
		FROM attendance
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND status = ANY($4)
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list worked attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Status,
			&a.HoursWorked, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// Stats implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Stats(ctx context.Context, start, end time.Time) (attendance.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total_records,
			COUNT(*) FILTER (WHERE status = 'Present') AS present,
			COUNT(*) FILTER (WHERE status = 'Absent') AS absent,
			COUNT(*) FILTER (WHERE status = 'Late') AS late,
			COUNT(*) FILTER (WHERE status = 'Half Day') AS half_day,
			COUNT(*) FILTER (WHERE status = 'Holiday') AS holiday,
			COALESCE(ROUND(AVG(hours_worked) FILTER (WHERE status IN ('Present', 'Late', 'Half Day')), 2), 0) AS average_hours,
			(SELECT COUNT(*) FROM employees WHERE status = 'Active') AS active_employees
		FROM attendance
		WHERE date BETWEEN $1 AND $2
	`

	var s attendance.Stats
	err := q.QueryRow(ctx, query, start, end).Scan(
		&s.TotalRecords, &s.Present, &s.Absent, &s.Late, &s.HalfDay, &s.Holiday,
		&s.AverageHours, &s.ActiveEmployees,
	)
	if err != nil {
		return attendance.Stats{}, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	return s, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
