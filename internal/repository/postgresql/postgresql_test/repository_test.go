package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	leaveService "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestEmployee(t, ctx, db, "dup@example.com")

	_, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		Name:       "Other",
		Email:      "dup@example.com",
		Department: "Sales",
		Position:   "Rep",
		HireDate:   date("2024-01-02"),
		Status:     employee.StatusActive,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestLeaveBalanceRepository_CreateIfAbsentAndIncrement(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveBalanceRepository(db)
	e := createTestEmployee(t, ctx, db, "ledger@example.com")

	_, err := repo.IncrementUsedDays(ctx, e.ID, leave.LeaveTypeAnnual, 2024, 3)
	assert.ErrorIs(t, err, leave.ErrLeaveBalanceNotFound)

	created, ok, err := repo.CreateIfAbsent(ctx, leave.LeaveBalance{
		EmployeeID: e.ID, LeaveType: leave.LeaveTypeAnnual, Year: 2024,
		AllocatedDays: leave.DefaultAllocatedDays, UsedDays: 3,
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 17, created.RemainingDays())

	_, ok, err = repo.CreateIfAbsent(ctx, leave.LeaveBalance{
		EmployeeID: e.ID, LeaveType: leave.LeaveTypeAnnual, Year: 2024,
		AllocatedDays: leave.DefaultAllocatedDays, UsedDays: 9,
	})
	require.NoError(t, err)
	assert.False(t, ok, "existing row must not be overwritten")

	updated, err := repo.IncrementUsedDays(ctx, e.ID, leave.LeaveTypeAnnual, 2024, -5)
	require.NoError(t, err)
	assert.Equal(t, -2, updated.UsedDays)
	assert.Equal(t, 22, updated.RemainingDays())

	balances, err := repo.ListByEmployeeYear(ctx, e.ID, 2024)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, created.ID, balances[0].ID)

	_, _, err = repo.CreateIfAbsent(ctx, leave.LeaveBalance{
		EmployeeID: randomID(), LeaveType: leave.LeaveTypeSick, Year: 2024,
		AllocatedDays: leave.DefaultAllocatedDays,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLedger_ConcurrentAdjustAgainstPostgres(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	e := createTestEmployee(t, ctx, db, "concurrent@example.com")
	ledger := leaveService.NewLedger(postgresql.NewLeaveBalanceRepository(db))

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Adjust(ctx, e.ID, leave.LeaveTypePersonal, 2025, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	balances, err := postgresql.NewLeaveBalanceRepository(db).ListByEmployeeYear(ctx, e.ID, 2025)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, writers, balances[0].UsedDays)
}

func TestPayrollRepository_UpsertKeepsIdentity(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)
	e := createTestEmployee(t, ctx, db, "payroll@example.com")

	record := payroll.PayrollRecord{
		EmployeeID:     e.ID,
		PayPeriodStart: date("2024-01-01"),
		PayPeriodEnd:   date("2024-01-31"),
		RegularHours:   decimal.NewFromInt(16),
		OvertimeHours:  decimal.NewFromInt(1),
		TotalHours:     decimal.NewFromInt(17),
		HourlyRate:     decimal.NewFromInt(10),
		OvertimeRate:   decimal.NewFromInt(15),
		RegularPay:     decimal.NewFromInt(160),
		OvertimePay:    decimal.NewFromInt(15),
		GrossPay:       decimal.NewFromInt(175),
		Bonus:          decimal.Zero,
		Deductions:     decimal.NewFromInt(10),
		NetPay:         decimal.NewFromInt(165),
	}

	first, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusCalculated, first.Status)
	require.NotNil(t, first.EmployeeName)
	assert.Equal(t, "Test Employee", *first.EmployeeName)

	approved, err := repo.UpdateStatus(ctx, first.ID, payroll.PayrollStatusApproved, nil, first.GeneratedAt)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedAt)

	record.Bonus = decimal.NewFromInt(50)
	record.NetPay = decimal.NewFromInt(215)
	second, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.NetPay.Equal(decimal.NewFromInt(215)))
	assert.Equal(t, payroll.PayrollStatusCalculated, second.Status)
	assert.NotNil(t, second.ApprovedAt)

	records, err := repo.List(ctx, payroll.PayrollFilter{EmployeeID: &e.ID})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	record.EmployeeID = randomID()
	_, err = repo.Upsert(ctx, record)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollSettingsRepository_CurrentAsOf(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollSettingsRepository(db)
	e := createTestEmployee(t, ctx, db, "settings@example.com")

	_, err := repo.CurrentAsOf(ctx, e.ID, date("2024-02-01"))
	assert.ErrorIs(t, err, payroll.ErrPayrollSettingsNotFound)

	for _, v := range []struct {
		from string
		rate int64
	}{{"2024-01-01", 10}, {"2024-03-01", 12}} {
		_, err := repo.Upsert(ctx, payroll.Settings{
			EmployeeID:          e.ID,
			HourlyRate:          decimal.NewFromInt(v.rate),
			OvertimeRate:        decimal.NewFromInt(15),
			RegularHoursPerDay:  decimal.NewFromInt(8),
			WorkingDaysPerMonth: 22,
			Bonus:               decimal.Zero,
			Deductions:          decimal.Zero,
			EffectiveFrom:       date(v.from),
		})
		require.NoError(t, err)
	}

	s, err := repo.CurrentAsOf(ctx, e.ID, date("2024-02-15"))
	require.NoError(t, err)
	assert.True(t, s.HourlyRate.Equal(decimal.NewFromInt(10)))

	s, err = repo.CurrentAsOf(ctx, e.ID, date("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, s.HourlyRate.Equal(decimal.NewFromInt(12)))
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(db)
	repo := postgresql.NewEmployeeRepository(db)
	boom := errors.New("boom")

	var createdID string
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e := createTestEmployee(t, ctx, db, "rollback@example.com")
		createdID = e.ID
		return boom
	})
	assert.ErrorIs(t, err, database.ErrTransactionAborted)
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, createdID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollRepository_StatsBoundedToMonth(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(db)
	e := createTestEmployee(t, ctx, db, "stats@example.com")

	periods := [][2]string{
		{"2024-01-31", "2024-02-01"},
		{"2024-02-01", "2024-02-29"},
		{"2024-02-29", "2024-03-05"},
		{"2024-03-01", "2024-03-31"},
	}
	for _, p := range periods {
		_, err := repo.Upsert(ctx, payroll.PayrollRecord{
			EmployeeID:     e.ID,
			PayPeriodStart: date(p[0]),
			PayPeriodEnd:   date(p[1]),
			HourlyRate:     decimal.NewFromInt(10),
			OvertimeRate:   decimal.NewFromInt(15),
		})
		require.NoError(t, err)
	}

	stats, err := repo.Stats(ctx, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRecords)
	assert.Equal(t, int64(2), stats.Calculated)
}

func TestLeaveRequestRepository_StatsByAppliedYear(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(db)
	e := createTestEmployee(t, ctx, db, "leave-stats@example.com")

	requests := []struct {
		applied, start, end string
	}{
		{"2023-12-20", "2024-01-02", "2024-01-03"},
		{"2024-01-01", "2024-01-10", "2024-01-10"},
		{"2024-12-31", "2025-01-05", "2025-01-06"},
		{"2025-01-01", "2025-02-01", "2025-02-01"},
	}
	for _, r := range requests {
		_, err := repo.Create(ctx, leave.LeaveRequest{
			EmployeeID:    e.ID,
			LeaveType:     leave.LeaveTypeAnnual,
			StartDate:     date(r.start),
			EndDate:       date(r.end),
			DaysRequested: leave.DaysRequested(date(r.start), date(r.end)),
			Status:        leave.LeaveRequestStatusPending,
			AppliedDate:   date(r.applied),
		})
		require.NoError(t, err)
	}

	stats, err := repo.Stats(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(2), stats.Annual)
}

func TestAttendanceRepository_ListRosterByDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)

	newEmployee := func(name, email string, status employee.EmploymentStatus) employee.Employee {
		e, err := employees.Create(ctx, employee.Employee{
			Name: name, Email: email, Department: "Engineering", Position: "Engineer",
			HireDate: date("2024-01-02"), Salary: decimal.NewFromInt(4000), Status: status,
		})
		require.NoError(t, err)
		return e
	}
	alice := newEmployee("Alice", "alice@example.com", employee.StatusActive)
	bob := newEmployee("Bob", "bob@example.com", employee.StatusActive)
	newEmployee("Carol", "carol@example.com", employee.StatusInactive)

	in, out := "09:00:00", "17:00:00"
	_, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: alice.ID, Date: date("2024-01-15"), CheckIn: &in, CheckOut: &out,
		Status: attendance.StatusPresent, HoursWorked: decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: bob.ID, Date: date("2024-01-16"), Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	roster, err := repo.ListRosterByDate(ctx, date("2024-01-15"))
	require.NoError(t, err)
	require.Len(t, roster, 2, "inactive staff are left out")

	assert.Equal(t, "Alice", roster[0].Name)
	require.NotNil(t, roster[0].Status)
	assert.Equal(t, attendance.StatusPresent, *roster[0].Status)
	assert.True(t, roster[0].HoursWorked.Equal(decimal.NewFromInt(8)))

	assert.Equal(t, "Bob", roster[1].Name)
	assert.Nil(t, roster[1].AttendanceID)
	assert.Nil(t, roster[1].Status)
	assert.True(t, roster[1].HoursWorked.IsZero())
}
