package leave

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

// Ledger applies relative adjustments to leave balances. Rows are created
// lazily on first use with leave.DefaultAllocatedDays.
type Ledger struct {
	balanceRepo leave.LeaveBalanceRepository
}

func NewLedger(balanceRepo leave.LeaveBalanceRepository) *Ledger {
	return &Ledger{balanceRepo: balanceRepo}
}

// Adjust adds delta to used_days for (employeeID, leaveType, year). A missing row
// is seeded with used_days = max(0, delta). If another writer seeds the row first
// the increment is retried once; a row that still cannot be updated yields
// leave.ErrBalanceAdjustConflict.
func (l *Ledger) Adjust(ctx context.Context, employeeID string, leaveType leave.LeaveType, year, delta int) (leave.LeaveBalance, error) {
	balance, err := l.balanceRepo.IncrementUsedDays(ctx, employeeID, leaveType, year, delta)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrLeaveBalanceNotFound) {
		return leave.LeaveBalance{}, err
	}

	if delta < 0 {
		slog.Warn("seeding leave balance from a negative adjustment",
			"employee_id", employeeID, "leave_type", leaveType, "year", year, "delta", delta)
	}

	seeded, created, err := l.balanceRepo.CreateIfAbsent(ctx, leave.LeaveBalance{
		EmployeeID:    employeeID,
		LeaveType:     leaveType,
		Year:          year,
		AllocatedDays: leave.DefaultAllocatedDays,
		UsedDays:      max(0, delta),
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if created {
		return seeded, nil
	}

	balance, err = l.balanceRepo.IncrementUsedDays(ctx, employeeID, leaveType, year, delta)
	if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
		return leave.LeaveBalance{}, leave.ErrBalanceAdjustConflict
	}
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return balance, nil
}
