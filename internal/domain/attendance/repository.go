package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert inserts or replaces the record for (employee_id, date).
	Upsert(ctx context.Context, a Attendance) (Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	// ListRosterByDate returns every Active employee with that day's record, if any, ordered by name.
	ListRosterByDate(ctx context.Context, date time.Time) ([]RosterEntry, error)
	// ListWorkedInRange returns Present, Late and Half Day rows in [start, end].
	ListWorkedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	Stats(ctx context.Context, start, end time.Time) (Stats, error)
	Delete(ctx context.Context, id string) error
}
