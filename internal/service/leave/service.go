package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	requestRepo  leave.LeaveRequestRepository
	balanceRepo  leave.LeaveBalanceRepository
	employeeRepo employee.EmployeeRepository
	ledger       *Ledger
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
		ledger:       NewLedger(balanceRepo),
		now:          time.Now,
	}
}

// ========== REQUESTS ==========

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	start, end, errs := validator.DateRange(req.StartDate, req.EndDate)
	if len(errs) > 0 {
		return leave.LeaveRequestResponse{}, errs
	}

	days := leave.DaysRequested(start, end)
	if days <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:    req.EmployeeID,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     start,
		EndDate:       end,
		DaysRequested: days,
		Reason:        req.Reason,
		Status:        leave.LeaveRequestStatusPending,
		AppliedDate:   utils.DateOf(s.now()),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request created", "leave_request_id", created.ID, "employee_id", created.EmployeeID, "days", days)
	return leave.NewLeaveRequestResponse(created), nil
}

// ReviewLeaveRequest implements leave.LeaveService. Only Pending requests can be
// reviewed. Approval charges the balance for the current year in the same
// transaction as the status write.
func (s *LeaveServiceImpl) ReviewLeaveRequest(ctx context.Context, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	decision := leave.LeaveRequestStatus(req.Status)
	if !decision.IsDecision() {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidReviewDecision
	}

	today := utils.DateOf(s.now())
	var reviewed leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if current.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		review := leave.Review{
			RequestID:    requestID,
			Status:       decision,
			AdminNotes:   req.AdminNotes,
			ReviewedDate: today,
		}
		if decision == leave.LeaveRequestStatusApproved {
			year := today.Year()
			review.AccrualYear = &year
		}

		reviewed, err = s.requestRepo.UpdateReview(ctx, review)
		if err != nil {
			return err
		}

		if review.AccrualYear != nil {
			if _, err := s.ledger.Adjust(ctx, current.EmployeeID, current.LeaveType, *review.AccrualYear, current.DaysRequested); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request reviewed", "leave_request_id", requestID, "status", decision)
	return leave.NewLeaveRequestResponse(reviewed), nil
}

// DeleteLeaveRequest implements leave.LeaveService. Deleting an Approved request
// reverses its accrual in the same transaction.
func (s *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, requestID string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if current.Status == leave.LeaveRequestStatusApproved {
			if _, err := s.ledger.Adjust(ctx, current.EmployeeID, current.LeaveType, current.ReversalYear(), -current.DaysRequested); err != nil {
				return err
			}
		}

		return s.requestRepo.Delete(ctx, requestID)
	})
	if err != nil {
		return err
	}

	slog.Info("leave request deleted", "leave_request_id", requestID)
	return nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.NewLeaveRequestResponse(r))
	}
	return resp, nil
}

// GetLeaveStats implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveStats(ctx context.Context) (leave.LeaveStatsResponse, error) {
	year := s.now().Year()
	stats, err := s.requestRepo.Stats(ctx, year)
	if err != nil {
		return leave.LeaveStatsResponse{}, err
	}
	stats.Year = year
	return leave.NewLeaveStatsResponse(stats), nil
}

// ========== BALANCES ==========

// GetLeaveBalances implements leave.LeaveService. Year defaults to the current one.
func (s *LeaveServiceImpl) GetLeaveBalances(ctx context.Context, employeeID string, year *int) ([]leave.LeaveBalanceResponse, error) {
	y := s.now().Year()
	if year != nil {
		y = *year
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, employeeID, y)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, leave.NewLeaveBalanceResponse(b))
	}
	return resp, nil
}
