package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

var leaveColumns = []string{
	"l.id", "l.employee_id", "l.start_date", "l.end_date", "l.day_count", "l.leave_type",
	"l.status", "l.reason", "l.rejection_reason", "l.created_at", "l.reviewed_at", "e.name",
}

func selectLeaves() squirrel.SelectBuilder {
	return psql.Select(leaveColumns...).
		From("leaves l").
		Join("employees e ON e.id = l.employee_id")
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.DayCount, &l.LeaveType,
		&l.Status, &l.Reason, &l.RejectionReason, &l.CreatedAt, &l.ReviewedAt, &l.EmployeeName,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (employee_id, start_date, end_date, day_count, leave_type, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	created := l
	err := q.QueryRow(ctx, query,
		l.EmployeeID, l.StartDate, l.EndDate, l.DayCount, l.LeaveType, l.Status, l.Reason, l.CreatedAt,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.Leave{}, employee.ErrEmployeeNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to insert leave: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectLeaves().Where(squirrel.Eq{"l.id": id}).ToSql()
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to build leave query: %w", err)
	}

	found, err := scanLeave(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave with id %d: %w", id, err)
	}
	return found, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET start_date = $1, end_date = $2, day_count = $3, leave_type = $4, reason = $5
		WHERE id = $6 AND status = 'Pending'
	`

	tag, err := q.Exec(ctx, query, l.StartDate, l.EndDate, l.DayCount, l.LeaveType, l.Reason, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave with id %d: %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrDecided(ctx, l.ID)
	}
	return nil
}

// Review implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Review(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, rejection_reason = $2, reviewed_at = $3
		WHERE id = $4 AND status = 'Pending'
	`

	tag, err := q.Exec(ctx, query, l.Status, l.RejectionReason, l.ReviewedAt, l.ID)
	if err != nil {
		return fmt.Errorf("failed to review leave with id %d: %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrDecided(ctx, l.ID)
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1 AND status <> 'Approved'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return leave.ErrCannotDeleteApproved
	}
	return nil
}

// missingOrDecided explains a guarded write that matched no row.
func (r *leaveRepositoryImpl) missingOrDecided(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return leave.ErrNotPending
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	builder := selectLeaves().OrderBy("l.created_at DESC", "l.id DESC")
	if filter.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"l.employee_id": *filter.EmployeeID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"l.status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leave list query: %w", err)
	}
	return collectLeaves(ctx, q, query, args...)
}

// HasOverlap implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	conds := squirrel.And{
		squirrel.Eq{"employee_id": employeeID},
		squirrel.NotEq{"status": leave.StatusRejected},
		squirrel.LtOrEq{"start_date": end},
		squirrel.GtOrEq{"end_date": start},
	}
	if excludeID != nil {
		conds = append(conds, squirrel.NotEq{"id": *excludeID})
	}

	sub, args, err := psql.Select("1").From("leaves").Where(conds).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build overlap query: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// LockEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) LockEmployee(ctx context.Context, employeeID int64) error {
	q := GetQuerier(ctx, r.db)

	var one int
	err := q.QueryRow(ctx, "SELECT 1 FROM employees WHERE id = $1 FOR UPDATE", employeeID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to lock employee: %w", err)
	}
	return nil
}

func collectLeaves(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Leave, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	list := make([]leave.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
