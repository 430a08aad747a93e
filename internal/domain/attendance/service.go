package attendance

import "context"

type AttendanceService interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	BulkMark(ctx context.Context, req BulkMarkAttendanceRequest) ([]AttendanceResponse, error)
	ListByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
	ListRosterByDate(ctx context.Context, date string) ([]RosterEntryResponse, error)
	Stats(ctx context.Context, startDate, endDate string) (StatsResponse, error)
	Delete(ctx context.Context, id string) error
}
