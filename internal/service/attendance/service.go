package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	saved, err := s.mark(ctx, date, req.EmployeeID, attendance.Status(req.Status), req.CheckIn, req.CheckOut, req.Notes)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(saved), nil
}

// BulkMark implements attendance.AttendanceService. Either every entry is stored or none is.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, _ := validator.IsValidDate(req.Date)

	resp := make([]attendance.AttendanceResponse, 0, len(req.Records))
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, rec := range req.Records {
			saved, err := s.mark(ctx, date, rec.EmployeeID, attendance.Status(rec.Status), rec.CheckIn, rec.CheckOut, rec.Notes)
			if err != nil {
				return err
			}
			resp = append(resp, attendance.NewAttendanceResponse(saved))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bulk attendance marked", "date", req.Date, "count", len(resp))
	return resp, nil
}

func (s *AttendanceServiceImpl) mark(ctx context.Context, date time.Time, employeeID string, status attendance.Status, checkIn, checkOut, notes *string) (attendance.Attendance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.Attendance{}, err
	}

	return s.attendanceRepo.Upsert(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      status,
		HoursWorked: attendance.HoursWorked(status, checkIn, checkOut),
		Notes:       notes,
	})
}

// ListByDate implements attendance.AttendanceService. An empty date means today.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.NewAttendanceResponse(r))
	}
	return resp, nil
}

// ListRosterByDate implements attendance.AttendanceService. An empty date means today.
func (s *AttendanceServiceImpl) ListRosterByDate(ctx context.Context, date string) ([]attendance.RosterEntryResponse, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}

	roster, err := s.attendanceRepo.ListRosterByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.RosterEntryResponse, 0, len(roster))
	for _, e := range roster {
		resp = append(resp, attendance.NewRosterEntryResponse(e))
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) day(date string) (time.Time, error) {
	if date == "" {
		return utils.DateOf(s.now()), nil
	}
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}}
	}
	return parsed, nil
}

// Stats implements attendance.AttendanceService. Missing bounds default to today.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, startDate, endDate string) (attendance.StatsResponse, error) {
	today := utils.DateOf(s.now()).Format(validator.DateLayout)
	if startDate == "" {
		startDate = today
	}
	if endDate == "" {
		endDate = startDate
	}

	start, end, errs := validator.DateRange(startDate, endDate)
	if len(errs) > 0 {
		return attendance.StatsResponse{}, errs
	}
	if end.Before(start) {
		return attendance.StatsResponse{}, validator.ValidationErrors{{Field: "end_date", Message: "must not be before start_date"}}
	}

	stats, err := s.attendanceRepo.Stats(ctx, start, end)
	if err != nil {
		return attendance.StatsResponse{}, err
	}
	return attendance.NewStatsResponse(start, end, stats), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}
