// Package memory keeps every repository in process memory. It mirrors the
// PostgreSQL constraints the services rely on (unique keys, foreign keys,
// cascades) and backs the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/user"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64

	companies   map[int64]company.Company
	employees   map[int64]employee.Employee
	attendances map[int64]attendance.Attendance
	leaves      map[int64]leave.Leave
	users       map[int64]user.User

	rowLocks sync.Map // row key -> *sync.Mutex
}

type txKey struct{}

// tx records the row locks taken inside one WithinTx call.
type tx struct {
	held map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		companies:   make(map[int64]company.Company),
		employees:   make(map[int64]employee.Employee),
		attendances: make(map[int64]attendance.Attendance),
		leaves:      make(map[int64]leave.Leave),
		users:       make(map[int64]user.User),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// WithinTx runs fn and releases the row locks it took when fn returns.
// Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}
	t := &tx{held: make(map[string]*sync.Mutex)}
	defer func() {
		for _, m := range t.held {
			m.Unlock()
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, t))
}

// lockRow blocks until the row identified by key is free and keeps it until the
// surrounding transaction ends. Outside a transaction it is a no-op.
func (s *Store) lockRow(ctx context.Context, key string) {
	t, ok := ctx.Value(txKey{}).(*tx)
	if !ok {
		return
	}
	if _, held := t.held[key]; held {
		return
	}
	v, _ := s.rowLocks.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	t.held[key] = m
}

func (s *Store) Companies() company.CompanyRepository {
	return &companyRepository{s}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{s}
}

func (s *Store) Attendance() attendance.AttendanceRepository {
	return &attendanceRepository{s}
}

func (s *Store) Leaves() leave.LeaveRepository {
	return &leaveRepository{s}
}

func (s *Store) Users() user.UserRepository {
	return &userRepository{s}
}
