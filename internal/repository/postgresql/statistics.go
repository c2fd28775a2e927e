package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/statistics"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type statisticsRepositoryImpl struct {
	db *database.DB
}

func NewStatisticsRepository(db *database.DB) statistics.StatisticsRepository {
	return &statisticsRepositoryImpl{db: db}
}

// EmployeeSummary returns total and expiring document counts in a single query
func (r *statisticsRepositoryImpl) EmployeeSummary(ctx context.Context, from, until time.Time, companyID *int64) (statistics.EmployeeSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN passport_expiry_date BETWEEN $1 AND $2 THEN 1 ELSE 0 END), 0) AS expiring_passports,
			COALESCE(SUM(CASE WHEN id_expiry_date BETWEEN $1 AND $2 THEN 1 ELSE 0 END), 0) AS expiring_ids
		FROM employees
		WHERE ($3::BIGINT IS NULL OR company_id = $3)
	`

	var sum statistics.EmployeeSummary
	err := q.QueryRow(ctx, query, from, until, companyID).Scan(&sum.Total, &sum.ExpiringPassports, &sum.ExpiringIDs)
	if err != nil {
		return statistics.EmployeeSummary{}, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return sum, nil
}

// CompanySummary returns total and expiring license counts in a single query
func (r *statisticsRepositoryImpl) CompanySummary(ctx context.Context, from, until time.Time) (statistics.CompanySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN license_expiry_date BETWEEN $1 AND $2 THEN 1 ELSE 0 END), 0) AS expiring_licenses
		FROM companies
	`

	var sum statistics.CompanySummary
	if err := q.QueryRow(ctx, query, from, until).Scan(&sum.Total, &sum.ExpiringLicenses); err != nil {
		return statistics.CompanySummary{}, fmt.Errorf("failed to get company summary: %w", err)
	}
	return sum, nil
}

func (r *statisticsRepositoryImpl) CheckedInCount(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE date = $1 AND check_in IS NOT NULL`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count checked-in employees: %w", err)
	}
	return count, nil
}

// LeaveSummary returns pending and currently active approved leaves in a single query
func (r *statisticsRepositoryImpl) LeaveSummary(ctx context.Context, date time.Time) (statistics.LeaveSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'Approved' AND $1 BETWEEN start_date AND end_date THEN 1 ELSE 0 END), 0) AS approved_active
		FROM leaves
	`

	var sum statistics.LeaveSummary
	if err := q.QueryRow(ctx, query, date).Scan(&sum.Pending, &sum.ApprovedActive); err != nil {
		return statistics.LeaveSummary{}, fmt.Errorf("failed to get leave summary: %w", err)
	}
	return sum, nil
}

func (r *statisticsRepositoryImpl) EmployeeCountsByCompany(ctx context.Context) ([]statistics.CompanyEmployeeCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, COUNT(e.id)
		FROM companies c
		LEFT JOIN employees e ON e.company_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees per company: %w", err)
	}
	defer rows.Close()

	counts := make([]statistics.CompanyEmployeeCount, 0)
	for rows.Next() {
		var c statistics.CompanyEmployeeCount
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.EmployeeCount); err != nil {
			return nil, fmt.Errorf("failed to scan employee count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *statisticsRepositoryImpl) expiringDocuments(ctx context.Context, column string, from, until time.Time) ([]statistics.EmployeeExpiry, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.
		Select("e.id", "e.name", "c.id", "c.name", "e.passport_number", "e."+column).
		From("employees e").
		Join("companies c ON c.id = e.company_id").
		Where(squirrel.GtOrEq{"e." + column: from}).
		Where(squirrel.LtOrEq{"e." + column: until}).
		OrderBy("e."+column+" ASC", "e.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expiry query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring %s: %w", column, err)
	}
	defer rows.Close()

	list := make([]statistics.EmployeeExpiry, 0)
	for rows.Next() {
		var e statistics.EmployeeExpiry
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.CompanyID, &e.CompanyName, &e.PassportNumber, &e.ExpiryDate); err != nil {
			return nil, fmt.Errorf("failed to scan expiring document: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *statisticsRepositoryImpl) ExpiringPassports(ctx context.Context, from, until time.Time) ([]statistics.EmployeeExpiry, error) {
	return r.expiringDocuments(ctx, "passport_expiry_date", from, until)
}

func (r *statisticsRepositoryImpl) ExpiringIDs(ctx context.Context, from, until time.Time) ([]statistics.EmployeeExpiry, error) {
	return r.expiringDocuments(ctx, "id_expiry_date", from, until)
}

func (r *statisticsRepositoryImpl) ExpiringLicenses(ctx context.Context, from, until time.Time) ([]statistics.CompanyLicense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, c.license_expiry_date, COUNT(e.id)
		FROM companies c
		LEFT JOIN employees e ON e.company_id = c.id
		WHERE c.license_expiry_date BETWEEN $1 AND $2
		GROUP BY c.id, c.name, c.license_expiry_date
		ORDER BY c.license_expiry_date ASC, c.name ASC
	`

	rows, err := q.Query(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring licenses: %w", err)
	}
	defer rows.Close()

	list := make([]statistics.CompanyLicense, 0)
	for rows.Next() {
		var c statistics.CompanyLicense
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.LicenseExpiryDate, &c.EmployeeCount); err != nil {
			return nil, fmt.Errorf("failed to scan expiring license: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *statisticsRepositoryImpl) PresentAttendance(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectAttendance().
		Where(squirrel.Eq{"a.date": date}).
		Where("a.check_in IS NOT NULL").
		OrderBy("a.check_in ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build present attendance query: %w", err)
	}
	return collectAttendance(ctx, q, query, args...)
}

func (r *statisticsRepositoryImpl) AbsentEmployees(ctx context.Context, date time.Time) ([]statistics.AbsentEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.name, c.id, c.name, e.job_title
		FROM employees e
		JOIN companies c ON c.id = e.company_id
		WHERE NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $1 AND a.check_in IS NOT NULL
		)
		ORDER BY e.name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list absent employees: %w", err)
	}
	defer rows.Close()

	list := make([]statistics.AbsentEmployee, 0)
	for rows.Next() {
		var a statistics.AbsentEmployee
		if err := rows.Scan(&a.EmployeeID, &a.EmployeeName, &a.CompanyID, &a.CompanyName, &a.JobTitle); err != nil {
			return nil, fmt.Errorf("failed to scan absent employee: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *statisticsRepositoryImpl) PendingLeaves(ctx context.Context) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectLeaves().
		Where(squirrel.Eq{"l.status": leave.StatusPending}).
		OrderBy("l.created_at DESC", "l.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending leaves query: %w", err)
	}
	return collectLeaves(ctx, q, query, args...)
}

func (r *statisticsRepositoryImpl) ApprovedLeavesOn(ctx context.Context, date time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectLeaves().
		Where(squirrel.Eq{"l.status": leave.StatusApproved}).
		Where(squirrel.LtOrEq{"l.start_date": date}).
		Where(squirrel.GtOrEq{"l.end_date": date}).
		OrderBy("l.start_date ASC", "l.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build approved leaves query: %w", err)
	}
	return collectLeaves(ctx, q, query, args...)
}

// AttendanceSheet lists every employee with their record for date, if any
func (r *statisticsRepositoryImpl) AttendanceSheet(ctx context.Context, date time.Time) ([]statistics.SheetRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.name, c.name, a.check_in, a.check_out, a.work_duration_ns, a.status
		FROM employees e
		JOIN companies c ON c.id = e.company_id
		LEFT JOIN attendances a ON a.employee_id = e.id AND a.date = $1
		ORDER BY c.name ASC, e.name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance sheet: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (statistics.SheetRow, error) {
		var (
			s          statistics.SheetRow
			durationNs *int64
		)
		if err := row.Scan(&s.EmployeeName, &s.CompanyName, &s.CheckIn, &s.CheckOut, &durationNs, &s.Status); err != nil {
			return statistics.SheetRow{}, err
		}
		if durationNs != nil {
			d := time.Duration(*durationNs)
			s.WorkDuration = &d
		}
		return s, nil
	})
}
