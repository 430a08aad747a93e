package leave

import (
	"context"
)

type LeaveService interface {
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ReviewLeaveRequest(ctx context.Context, requestID string, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
	DeleteLeaveRequest(ctx context.Context, requestID string) error
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetLeaveStats(ctx context.Context) (LeaveStatsResponse, error)
	// Balance
	GetLeaveBalances(ctx context.Context, employeeID string, year *int) ([]LeaveBalanceResponse, error)
}
