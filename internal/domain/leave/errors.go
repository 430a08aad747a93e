package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange             = errors.New("end date must not be before start date")
	ErrInvalidReviewDecision        = errors.New("review decision must be Approved or Rejected")
	// ErrLeaveBalanceNotFound means no row exists yet for (employee, leave type, year).
	ErrLeaveBalanceNotFound = errors.New("leave balance not found")
	// ErrBalanceAdjustConflict means the row exists but the relative update did not apply.
	ErrBalanceAdjustConflict = errors.New("leave balance adjustment could not be applied")
)
