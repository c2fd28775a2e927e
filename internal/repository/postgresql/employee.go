package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

var employeeColumns = []string{
	"e.id", "e.company_id", "e.name", "e.job_title", "e.salary", "e.passport_number",
	"e.passport_expiry_date", "e.id_expiry_date",
	"e.personal_photo_path", "e.passport_photo_path", "e.id_photo_path",
	"e.created_at", "c.name",
}

func selectEmployees() squirrel.SelectBuilder {
	return psql.Select(employeeColumns...).
		From("employees e").
		Join("companies c ON c.id = e.company_id")
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Name, &e.JobTitle, &e.Salary, &e.PassportNumber,
		&e.PassportExpiryDate, &e.IDExpiryDate,
		&e.PersonalPhotoPath, &e.PassportPhotoPath, &e.IDPhotoPath,
		&e.CreatedAt, &e.CompanyName,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := selectEmployees().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to build employee query: %w", err)
	}

	found, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %d: %w", id, err)
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	builder := selectEmployees().OrderBy("e.name ASC", "e.id ASC")
	if filter.CompanyID != nil {
		builder = builder.Where(squirrel.Eq{"e.company_id": *filter.CompanyID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build employee list query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Insert("employees").
		Columns(
			"company_id", "name", "job_title", "salary", "passport_number",
			"passport_expiry_date", "id_expiry_date",
			"personal_photo_path", "passport_photo_path", "id_photo_path", "created_at",
		).
		Values(
			e.CompanyID, e.Name, e.JobTitle, e.Salary, e.PassportNumber,
			e.PassportExpiryDate, e.IDExpiryDate,
			e.PersonalPhotoPath, e.PassportPhotoPath, e.IDPhotoPath, e.CreatedAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to build employee insert: %w", err)
	}

	created := e
	if err := q.QueryRow(ctx, query, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return employee.Employee{}, company.ErrCompanyNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Update("employees").
		SetMap(map[string]interface{}{
			"company_id":           e.CompanyID,
			"name":                 e.Name,
			"job_title":            e.JobTitle,
			"salary":               e.Salary,
			"passport_number":      e.PassportNumber,
			"passport_expiry_date": e.PassportExpiryDate,
			"id_expiry_date":       e.IDExpiryDate,
			"personal_photo_path":  e.PersonalPhotoPath,
			"passport_photo_path":  e.PassportPhotoPath,
			"id_photo_path":        e.IDPhotoPath,
		}).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build employee update: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update employee with id %d: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// PhotoPathsByCompany implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) PhotoPathsByCompany(ctx context.Context, companyID int64) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT path FROM (
			SELECT personal_photo_path AS path FROM employees WHERE company_id = $1
			UNION ALL
			SELECT passport_photo_path FROM employees WHERE company_id = $1
			UNION ALL
			SELECT id_photo_path FROM employees WHERE company_id = $1
		) photos
		WHERE path IS NOT NULL AND path <> ''
		ORDER BY path
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo paths for company %d: %w", companyID, err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
