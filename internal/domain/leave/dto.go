package leave

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	LeaveType  string  `json:"leave_type" validate:"required,oneof=Annual Sick Personal Maternity Paternity Emergency Unpaid"`
	StartDate  string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	return validator.Struct(r)
}

type ReviewLeaveRequestRequest struct {
	Status     string  `json:"status" validate:"required,oneof=Approved Rejected"`
	AdminNotes *string `json:"admin_notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	return validator.Struct(r)
}

type LeaveRequestFilter struct {
	Status     *LeaveRequestStatus
	EmployeeID *string
}

type LeaveRequestResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    *string   `json:"employee_name,omitempty"`
	Department      *string   `json:"department,omitempty"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	DaysRequested   int       `json:"days_requested"`
	Reason          *string   `json:"reason,omitempty"`
	Status          string    `json:"status"`
	AdminNotes      *string   `json:"admin_notes,omitempty"`
	ReviewedByAdmin bool      `json:"reviewed_by_admin"`
	AppliedDate     string    `json:"applied_date"`
	ReviewedDate    *string   `json:"reviewed_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Department:      r.Department,
		LeaveType:       string(r.LeaveType),
		StartDate:       r.StartDate.Format(validator.DateLayout),
		EndDate:         r.EndDate.Format(validator.DateLayout),
		DaysRequested:   r.DaysRequested,
		Reason:          r.Reason,
		Status:          string(r.Status),
		AdminNotes:      r.AdminNotes,
		ReviewedByAdmin: r.ReviewedByAdmin,
		AppliedDate:     r.AppliedDate.Format(validator.DateLayout),
		CreatedAt:       r.CreatedAt,
	}
	if r.ReviewedDate != nil {
		reviewed := r.ReviewedDate.Format(validator.DateLayout)
		resp.ReviewedDate = &reviewed
	}
	return resp
}

type LeaveBalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveType     string `json:"leave_type"`
	Year          int    `json:"year"`
	AllocatedDays int    `json:"allocated_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveType:     string(b.LeaveType),
		Year:          b.Year,
		AllocatedDays: b.AllocatedDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays(),
	}
}

type LeaveStatsResponse struct {
	Year              int   `json:"year"`
	Total             int64 `json:"total"`
	Pending           int64 `json:"pending"`
	Approved          int64 `json:"approved"`
	Rejected          int64 `json:"rejected"`
	Annual            int64 `json:"annual"`
	Sick              int64 `json:"sick"`
	TotalApprovedDays int64 `json:"total_approved_days"`
}

func NewLeaveStatsResponse(s Stats) LeaveStatsResponse {
	return LeaveStatsResponse{
		Year:              s.Year,
		Total:             s.Total,
		Pending:           s.Pending,
		Approved:          s.Approved,
		Rejected:          s.Rejected,
		Annual:            s.Annual,
		Sick:              s.Sick,
		TotalApprovedDays: s.TotalApprovedDays,
	}
}
