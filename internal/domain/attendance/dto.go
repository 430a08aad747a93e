package attendance

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     string  `json:"status" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	errs, err := validator.Merge(nil, validator.Struct(r))
	if err != nil {
		return err
	}
	errs = append(errs, validateEntry("", r.Status, r.CheckIn, r.CheckOut)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAttendanceEntry struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     string  `json:"status" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
}

type BulkMarkAttendanceRequest struct {
	Date    string                `json:"date" validate:"required,datetime=2006-01-02"`
	Records []BulkAttendanceEntry `json:"records" validate:"required,min=1,dive"`
}

func (r *BulkMarkAttendanceRequest) Validate() error {
	errs, err := validator.Merge(nil, validator.Struct(r))
	if err != nil {
		return err
	}
	for i, rec := range r.Records {
		prefix := "records[" + strconv.Itoa(i) + "]."
		errs = append(errs, validateEntry(prefix, rec.Status, rec.CheckIn, rec.CheckOut)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEntry(prefix, status string, checkIn, checkOut *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if status != "" && !Status(status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: prefix + "status", Message: "must be one of: Present, Absent, Late, Half Day, Holiday"})
	}
	if checkIn != nil && !validator.IsValidClock(*checkIn) {
		errs = append(errs, validator.ValidationError{Field: prefix + "check_in", Message: "must be a time in HH:MM or HH:MM:SS format"})
	}
	if checkOut != nil && !validator.IsValidClock(*checkOut) {
		errs = append(errs, validator.ValidationError{Field: prefix + "check_out", Message: "must be a time in HH:MM or HH:MM:SS format"})
	}
	return errs
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Department   *string         `json:"department,omitempty"`
	Date         string          `json:"date"`
	CheckIn      *string         `json:"check_in"`
	CheckOut     *string         `json:"check_out"`
	Status       string          `json:"status"`
	HoursWorked  decimal.Decimal `json:"hours_worked"`
	Notes        *string         `json:"notes,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Department:   a.Department,
		Date:         a.Date.Format(validator.DateLayout),
		CheckIn:      a.CheckIn,
		CheckOut:     a.CheckOut,
		Status:       string(a.Status),
		HoursWorked:  a.HoursWorked,
		Notes:        a.Notes,
	}
}

// NotMarked is reported for employees with no record on the requested day.
const NotMarked = "Not Marked"

type RosterEntryResponse struct {
	EmployeeID       string          `json:"employee_id"`
	Name             string          `json:"name"`
	Department       string          `json:"department"`
	Position         string          `json:"position"`
	EmployeeStatus   string          `json:"employee_status"`
	AttendanceID     *string         `json:"attendance_id"`
	CheckIn          *string         `json:"check_in"`
	CheckOut         *string         `json:"check_out"`
	AttendanceStatus string          `json:"attendance_status"`
	HoursWorked      decimal.Decimal `json:"hours_worked"`
	Notes            string          `json:"notes"`
}

func NewRosterEntryResponse(e RosterEntry) RosterEntryResponse {
	resp := RosterEntryResponse{
		EmployeeID:       e.EmployeeID,
		Name:             e.Name,
		Department:       e.Department,
		Position:         e.Position,
		EmployeeStatus:   e.EmployeeStatus,
		AttendanceID:     e.AttendanceID,
		CheckIn:          e.CheckIn,
		CheckOut:         e.CheckOut,
		AttendanceStatus: NotMarked,
		HoursWorked:      e.HoursWorked,
	}
	if e.Status != nil {
		resp.AttendanceStatus = string(*e.Status)
	}
	if e.Notes != nil {
		resp.Notes = *e.Notes
	}
	return resp
}

type StatsResponse struct {
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalRecords    int64           `json:"total_records"`
	Present         int64           `json:"present"`
	Absent          int64           `json:"absent"`
	Late            int64           `json:"late"`
	HalfDay         int64           `json:"half_day"`
	Holiday         int64           `json:"holiday"`
	AverageHours    decimal.Decimal `json:"average_hours"`
	ActiveEmployees int64           `json:"active_employees"`
}

func NewStatsResponse(start, end time.Time, s Stats) StatsResponse {
	return StatsResponse{
		StartDate:       start.Format(validator.DateLayout),
		EndDate:         end.Format(validator.DateLayout),
		TotalRecords:    s.TotalRecords,
		Present:         s.Present,
		Absent:          s.Absent,
		Late:            s.Late,
		HalfDay:         s.HalfDay,
		Holiday:         s.Holiday,
		AverageHours:    s.AverageHours,
		ActiveEmployees: s.ActiveEmployees,
	}
}
