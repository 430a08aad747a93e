package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-05-10", "2024-05-10", 1},
		{"2024-05-10", "2024-05-11", 2},
		{"2024-02-28", "2024-03-01", 3},
		{"2024-12-31", "2025-01-02", 3},
		{"2024-05-11", "2024-05-10", 0},
		{"2000-01-01", "2400-01-01", 146098},
		{"0001-01-01", "9999-12-31", 3652059},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DaysInclusive(day(c.start), day(c.end)), "%s..%s", c.start, c.end)
	}
}

func TestDaysInclusive_IgnoresClock(t *testing.T) {
	start := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 5, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysInclusive(start, end))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, day("2024-02-01"), first)
	assert.Equal(t, day("2024-02-29"), last)
}
