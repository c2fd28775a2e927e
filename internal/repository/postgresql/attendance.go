package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

var attendanceColumns = []string{
	"a.id", "a.employee_id", "a.date", "a.check_in", "a.check_out", "a.work_duration_ns",
	"a.status", "a.notes", "a.created_at", "e.name", "c.name",
}

func selectAttendance() squirrel.SelectBuilder {
	return psql.Select(attendanceColumns...).
		From("attendances a").
		Join("employees e ON e.id = a.employee_id").
		Join("companies c ON c.id = e.company_id")
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		a          attendance.Attendance
		durationNs *int64
	)
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &durationNs,
		&a.Status, &a.Notes, &a.CreatedAt, &a.EmployeeName, &a.CompanyName,
	)
	if durationNs != nil {
		d := time.Duration(*durationNs)
		a.WorkDuration = &d
	}
	return a, err
}

func durationNanos(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	ns := d.Nanoseconds()
	return &ns
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out, work_duration_ns, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	created := a
	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.Date, a.CheckIn, a.CheckOut, durationNanos(a.WorkDuration), a.Status, a.Notes, a.CreatedAt,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return attendance.Attendance{}, attendance.ErrDuplicateForDate
		case isForeignKeyViolation(err):
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectAttendance().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to build attendance query: %w", err)
	}

	found, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance with id %d: %w", id, err)
	}
	return found, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
// The row is locked when running inside a transaction.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectAttendance().
		Where(squirrel.Eq{"a.employee_id": employeeID, "a.date": date}).
		Suffix("FOR UPDATE OF a").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance query: %w", err)
	}

	found, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %d: %w", employeeID, err)
	}
	return &found, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET date = $1, check_in = $2, check_out = $3, work_duration_ns = $4, status = $5, notes = $6
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query, a.Date, a.CheckIn, a.CheckOut, durationNanos(a.WorkDuration), a.Status, a.Notes, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateForDate
		}
		return fmt.Errorf("failed to update attendance with id %d: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	builder := selectAttendance().OrderBy("a.date DESC", "a.check_in DESC NULLS LAST", "a.id DESC")
	if filter.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"a.employee_id": *filter.EmployeeID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"a.date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"a.date": *filter.EndDate})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance list query: %w", err)
	}
	return collectAttendance(ctx, q, query, args...)
}

func collectAttendance(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	list := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
