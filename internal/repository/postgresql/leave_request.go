package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days_requested,
	lr.reason, lr.status, lr.admin_notes, lr.reviewed_by_admin, lr.applied_date, lr.reviewed_date,
	lr.accrual_year, lr.created_at, lr.updated_at, e.name AS employee_name, e.department`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.DaysRequested,
		&lr.Reason, &lr.Status, &lr.AdminNotes, &lr.ReviewedByAdmin, &lr.AppliedDate, &lr.ReviewedDate,
		&lr.AccrualYear, &lr.CreatedAt, &lr.UpdatedAt, &lr.EmployeeName, &lr.Department,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	query := `
		WITH lr AS (
			INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, days_requested, reason, status, applied_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + leaveRequestColumns + `
		FROM lr
		JOIN employees e ON lr.employee_id = e.id
	`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		id.String(), request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate,
		request.DaysRequested, request.Reason, request.Status, request.AppliedDate,
	))
	if err != nil {
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, " FOR UPDATE OF lr")
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id string, lock string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1` + lock

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	query += " ORDER BY lr.applied_date DESC, lr.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

// UpdateReview implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateReview(ctx context.Context, review leave.Review) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH lr AS (
			UPDATE leave_requests SET
				status = $2,
				admin_notes = $3,
				reviewed_by_admin = TRUE,
				reviewed_date = $4,
				accrual_year = $5,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + leaveRequestColumns + `
		FROM lr
		JOIN employees e ON lr.employee_id = e.id
	`

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query,
		review.RequestID, review.Status, review.AdminNotes, review.ReviewedDate, review.AccrualYear,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request review: %w", err)
	}

	return updated, nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Stats implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Stats(ctx context.Context, year int) (leave.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'Pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'Approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'Rejected') AS rejected,
			COUNT(*) FILTER (WHERE leave_type = 'Annual') AS annual,
			COUNT(*) FILTER (WHERE leave_type = 'Sick') AS sick,
			COALESCE(SUM(days_requested) FILTER (WHERE status = 'Approved'), 0) AS total_approved_days
		FROM leave_requests
		WHERE applied_date BETWEEN $1 AND $2
	`

	first, _ := utils.MonthBounds(year, time.January)
	_, last := utils.MonthBounds(year, time.December)

	var s leave.Stats
	err := q.QueryRow(ctx, query, first, last).Scan(
		&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.Annual, &s.Sick, &s.TotalApprovedDays,
	)
	if err != nil {
		return leave.Stats{}, fmt.Errorf("failed to get leave stats: %w", err)
	}

	s.Year = year
	return s, nil
}
