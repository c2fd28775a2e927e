package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companySelect = `
	SELECT c.id, c.name, c.location, c.company_number, c.license_expiry_date, c.created_at,
		(SELECT COUNT(*) FROM employees e WHERE e.company_id = c.id) AS employee_count
	FROM companies c
`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Location, &c.CompanyNumber, &c.LicenseExpiryDate, &c.CreatedAt, &c.EmployeeCount)
	return c, err
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id int64) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	found, err := scanCompany(q.QueryRow(ctx, companySelect+" WHERE c.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %d: %w", id, err)
	}
	return found, nil
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, companySelect+" ORDER BY c.name ASC, c.id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, found)
	}
	return companies, rows.Err()
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name, location, company_number, license_expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	created := newCompany
	err := q.QueryRow(ctx, query,
		newCompany.Name, newCompany.Location, newCompany.CompanyNumber, newCompany.LicenseExpiryDate, newCompany.CreatedAt,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to insert company: %w", err)
	}
	created.EmployeeCount = 0
	return created, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepositoryImpl) Update(ctx context.Context, updated company.Company) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET name = $1, location = $2, company_number = $3, license_expiry_date = $4
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, updated.Name, updated.Location, updated.CompanyNumber, updated.LicenseExpiryDate, updated.ID)
	if err != nil {
		return fmt.Errorf("failed to update company with id %d: %w", updated.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// Delete implements company.CompanyRepository.
func (c *companyRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}
