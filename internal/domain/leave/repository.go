package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	UpdateReview(ctx context.Context, review Review) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, year int) (Stats, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// IncrementUsedDays applies used_days = used_days + delta in one statement.
	// Returns ErrLeaveBalanceNotFound when the row does not exist.
	IncrementUsedDays(ctx context.Context, employeeID string, leaveType LeaveType, year int, delta int) (LeaveBalance, error)
	// CreateIfAbsent inserts a seeded row. created is false when another writer got there first.
	CreateIfAbsent(ctx context.Context, balance LeaveBalance) (LeaveBalance, bool, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}

// Review is the persisted outcome of reviewing a request.
type Review struct {
	RequestID    string
	Status       LeaveRequestStatus
	AdminNotes   *string
	ReviewedDate time.Time
	AccrualYear  *int
}
