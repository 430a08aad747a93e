package utils

import "time"

// DateOf drops the clock part of t, keeping its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysInclusive counts calendar days in [start, end]. Returns a value < 1 when end precedes start.
// Day numbers come from Unix seconds so the result does not overflow time.Duration.
func DaysInclusive(start, end time.Time) int {
	s, e := DateOf(start), DateOf(end)
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
