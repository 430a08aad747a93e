package leave

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
)

// DefaultAllocatedDays seeds a balance row the first time it is adjusted.
const DefaultAllocatedDays = 20

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "Annual"
	LeaveTypeSick      LeaveType = "Sick"
	LeaveTypePersonal  LeaveType = "Personal"
	LeaveTypeMaternity LeaveType = "Maternity"
	LeaveTypePaternity LeaveType = "Paternity"
	LeaveTypeEmergency LeaveType = "Emergency"
	LeaveTypeUnpaid    LeaveType = "Unpaid"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "Rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a valid review outcome.
func (s LeaveRequestStatus) IsDecision() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID              string
	EmployeeID      string
	LeaveType       LeaveType
	StartDate       time.Time
	EndDate         time.Time
	DaysRequested   int
	Reason          *string
	Status          LeaveRequestStatus
	AdminNotes      *string
	ReviewedByAdmin bool
	AppliedDate     time.Time
	ReviewedDate    *time.Time
	// AccrualYear is the balance year charged on approval; nil until approved.
	AccrualYear *int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName *string
	Department   *string
}

// ReversalYear is the balance year an approved request must be reversed against.
func (r LeaveRequest) ReversalYear() int {
	if r.AccrualYear != nil {
		return *r.AccrualYear
	}
	return r.StartDate.Year()
}

// DaysRequested counts the inclusive calendar days of a request.
func DaysRequested(start, end time.Time) int {
	return utils.DaysInclusive(start, end)
}

// LeaveBalance entity
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveType     LeaveType
	Year          int
	AllocatedDays int
	UsedDays      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RemainingDays may be negative; over-use is not blocked.
func (b LeaveBalance) RemainingDays() int {
	return b.AllocatedDays - b.UsedDays
}

type Stats struct {
	Year              int
	Total             int64
	Pending           int64
	Approved          int64
	Rejected          int64
	Annual            int64
	Sick              int64
	TotalApprovedDays int64
}
