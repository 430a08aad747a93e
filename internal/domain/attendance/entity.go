package attendance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half Day"
	StatusHoliday Status = "Holiday"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusHoliday}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsWorking reports whether a day with this status counts towards payable hours.
func (s Status) IsWorking() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// WorkingStatuses lists the statuses that contribute hours to payroll.
func WorkingStatuses() []Status {
	return []Status{StatusPresent, StatusLate, StatusHalfDay}
}

type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	CheckIn     *string // HH:MM:SS
	CheckOut    *string
	Status      Status
	HoursWorked decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
}

// RosterEntry is one Active employee's standing on a given day. Attendance
// fields are nil when nothing was marked.
type RosterEntry struct {
	EmployeeID     string
	Name           string
	Department     string
	Position       string
	EmployeeStatus string
	AttendanceID   *string
	CheckIn        *string
	CheckOut       *string
	Status         *Status
	HoursWorked    decimal.Decimal
	Notes          *string
}

type Stats struct {
	TotalRecords    int64
	Present         int64
	Absent          int64
	Late            int64
	HalfDay         int64
	Holiday         int64
	AverageHours    decimal.Decimal
	ActiveEmployees int64
}

// HoursWorked derives payable hours for one day: zero when absent or when either
// clock time is missing, otherwise the check-in to check-out span, never negative.
func HoursWorked(status Status, checkIn, checkOut *string) decimal.Decimal {
	if status == StatusAbsent || checkIn == nil || checkOut == nil {
		return decimal.Zero
	}
	in, ok := parseClock(*checkIn)
	if !ok {
		return decimal.Zero
	}
	out, ok := parseClock(*checkOut)
	if !ok {
		return decimal.Zero
	}

	span := out - in
	if span <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(span / time.Second)).
		Div(decimal.NewFromInt(3600)).
		Round(2)
}

func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}
