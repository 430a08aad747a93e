package validator

import (
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// IsValidClock accepts HH:MM and HH:MM:SS.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// DateRange parses an inclusive start/end pair. Only the format is checked; callers decide
// whether an end before the start is an error.
func DateRange(start, end string) (time.Time, time.Time, ValidationErrors) {
	var errs ValidationErrors
	startDate, ok := IsValidDate(start)
	if !ok {
		errs = append(errs, ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	endDate, ok := IsValidDate(end)
	if !ok {
		errs = append(errs, ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return startDate, endDate, nil
}
