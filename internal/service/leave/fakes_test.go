package leave

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

var errNotImplemented = errors.New("not implemented")

type balanceKey struct {
	employeeID string
	leaveType  leave.LeaveType
	year       int
}

// store backs the fake repositories. The transactor snapshots it and restores
// the snapshot when the unit of work fails.
type store struct {
	mu       sync.Mutex
	seq      int
	requests map[string]leave.LeaveRequest
	balances map[balanceKey]leave.LeaveBalance
}

func newStore() *store {
	return &store{
		requests: make(map[string]leave.LeaveRequest),
		balances: make(map[balanceKey]leave.LeaveBalance),
	}
}

func (s *store) balance(employeeID string, leaveType leave.LeaveType, year int) (leave.LeaveBalance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[balanceKey{employeeID, leaveType, year}]
	return b, ok
}

type fakeTransactor struct {
	store *store
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++

	f.store.mu.Lock()
	requests := maps.Clone(f.store.requests)
	balances := maps.Clone(f.store.balances)
	f.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.store.mu.Lock()
		f.store.requests = requests
		f.store.balances = balances
		f.store.mu.Unlock()
		return fmt.Errorf("%w: %w", database.ErrTransactionAborted, err)
	}
	return nil
}

type fakeRequestRepo struct {
	store     *store
	lastStats int
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	f.store.seq++
	r.ID = fmt.Sprintf("leave-%d", f.store.seq)
	f.store.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	r, ok := f.store.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRequestRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var out []leave.LeaveRequest
	for _, r := range f.store.requests {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRequestRepo) UpdateReview(_ context.Context, review leave.Review) (leave.LeaveRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	r, ok := f.store.requests[review.RequestID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	reviewed := review.ReviewedDate
	r.Status = review.Status
	r.AdminNotes = review.AdminNotes
	r.ReviewedByAdmin = true
	r.ReviewedDate = &reviewed
	r.AccrualYear = review.AccrualYear
	f.store.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.store.requests, id)
	return nil
}

func (f *fakeRequestRepo) Stats(_ context.Context, year int) (leave.Stats, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	f.lastStats = year
	s := leave.Stats{Year: year}
	for _, r := range f.store.requests {
		s.Total++
		switch r.Status {
		case leave.LeaveRequestStatusPending:
			s.Pending++
		case leave.LeaveRequestStatusApproved:
			s.Approved++
			s.TotalApprovedDays += int64(r.DaysRequested)
		case leave.LeaveRequestStatusRejected:
			s.Rejected++
		}
	}
	return s, nil
}

// fakeBalanceRepo applies increments under the store lock, like a single
// relative UPDATE statement.
type fakeBalanceRepo struct {
	store *store

	// incrementErr, when set, fails every increment.
	incrementErr error
	// seedElsewhere makes CreateIfAbsent report that another writer created the row.
	seedElsewhere bool
	// vanish makes CreateIfAbsent report a competing insert that never becomes visible.
	vanish bool
}

func (f *fakeBalanceRepo) IncrementUsedDays(_ context.Context, employeeID string, leaveType leave.LeaveType, year int, delta int) (leave.LeaveBalance, error) {
	if f.incrementErr != nil {
		return leave.LeaveBalance{}, f.incrementErr
	}

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	key := balanceKey{employeeID, leaveType, year}
	b, ok := f.store.balances[key]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	b.UsedDays += delta
	f.store.balances[key] = b
	return b, nil
}

func (f *fakeBalanceRepo) CreateIfAbsent(_ context.Context, b leave.LeaveBalance) (leave.LeaveBalance, bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	key := balanceKey{b.EmployeeID, b.LeaveType, b.Year}
	if f.vanish {
		return leave.LeaveBalance{}, false, nil
	}
	if f.seedElsewhere {
		f.store.balances[key] = leave.LeaveBalance{
			ID: "other-writer", EmployeeID: b.EmployeeID, LeaveType: b.LeaveType, Year: b.Year,
			AllocatedDays: leave.DefaultAllocatedDays, UsedDays: 1,
		}
		return leave.LeaveBalance{}, false, nil
	}
	if _, ok := f.store.balances[key]; ok {
		return leave.LeaveBalance{}, false, nil
	}

	f.store.seq++
	b.ID = fmt.Sprintf("balance-%d", f.store.seq)
	f.store.balances[key] = b
	return b, true, nil
}

func (f *fakeBalanceRepo) ListByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var out []leave.LeaveBalance
	for k, b := range f.store.balances {
		if k.employeeID == employeeID && k.year == year {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveType < out[j].LeaveType })
	return out, nil
}

type fakeEmployeeRepo struct {
	ids map[string]bool
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if !f.ids[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, Status: employee.StatusActive}, nil
}

func (f *fakeEmployeeRepo) List(context.Context, employee.EmployeeFilter) ([]employee.Employee, error) {
	return nil, errNotImplemented
}

func (f *fakeEmployeeRepo) Create(context.Context, employee.Employee) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (f *fakeEmployeeRepo) Update(context.Context, string, employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, errNotImplemented
}

func (f *fakeEmployeeRepo) Delete(context.Context, string) error {
	return errNotImplemented
}
