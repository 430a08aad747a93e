package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `id, employee_id, leave_type, year, allocated_days, used_days, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.AllocatedDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// IncrementUsedDays implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) IncrementUsedDays(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, delta int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $4, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
		RETURNING ` + leaveBalanceColumns

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveType, year, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to adjust leave balance: %w", err)
	}
	return b, nil
}

// CreateIfAbsent implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) CreateIfAbsent(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveBalance{}, false, fmt.Errorf("failed to generate leave balance id: %w", err)
	}

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type, year, allocated_days, used_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, leave_type, year) DO NOTHING
		RETURNING ` + leaveBalanceColumns

	b, err := scanLeaveBalance(q.QueryRow(ctx, query,
		id.String(), balance.EmployeeID, balance.LeaveType, balance.Year, balance.AllocatedDays, balance.UsedDays,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, false, nil
		}
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return leave.LeaveBalance{}, false, employee.ErrEmployeeNotFound
		}
		return leave.LeaveBalance{}, false, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return b, true, nil
}

// ListByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave balances: %w", err)
	}

	return balances, nil
}
