package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepository_EmployeeCountAndCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	companies := postgresql.NewCompanyRepository(db)
	employees := postgresql.NewEmployeeRepository(db)

	acme := createCompany(t, db, "Acme", date(2025, 6, 1))
	beta := createCompany(t, db, "Beta", date(2025, 7, 1))

	photo := "employees/personal/a.jpg"
	first := createEmployee(t, db, acme.ID, "Alice", date(2026, 1, 1))
	first.PersonalPhotoPath = &photo
	require.NoError(t, employees.Update(ctx, first))
	createEmployee(t, db, acme.ID, "Bob", date(2026, 1, 1))

	found, err := companies.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.EmployeeCount)

	list, err := companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, int64(0), list[1].EmployeeCount)

	paths, err := employees.PhotoPathsByCompany(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{photo}, paths)

	require.NoError(t, companies.Delete(ctx, acme.ID))
	_, err = employees.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.ErrorIs(t, companies.Delete(ctx, acme.ID), company.ErrCompanyNotFound)

	beta.Name = "Beta Holdings"
	require.NoError(t, companies.Update(ctx, beta))
	found, err = companies.GetByID(ctx, beta.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta Holdings", found.Name)
}

func TestEmployeeRepository_UnknownCompany(t *testing.T) {
	db := newTestDB(t)
	_, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		CompanyID:          999,
		Name:               "Ghost",
		PassportExpiryDate: date(2026, 1, 1),
		IDExpiryDate:       date(2026, 1, 1),
		CreatedAt:          time.Now(),
	})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestEmployeeRepository_ListFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	acme := createCompany(t, db, "Acme", date(2025, 6, 1))
	beta := createCompany(t, db, "Beta", date(2025, 6, 1))
	createEmployee(t, db, acme.ID, "Zed", date(2026, 1, 1))
	createEmployee(t, db, acme.ID, "Amy", date(2026, 1, 1))
	createEmployee(t, db, beta.ID, "Kim", date(2026, 1, 1))

	repo := postgresql.NewEmployeeRepository(db)
	all, err := repo.List(ctx, employee.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyAcme, err := repo.List(ctx, employee.Filter{CompanyID: &acme.ID})
	require.NoError(t, err)
	require.Len(t, onlyAcme, 2)
	assert.Equal(t, "Amy", onlyAcme[0].Name)
	assert.Equal(t, "Acme", onlyAcme[0].CompanyName)
	assert.InDelta(t, 12500.50, onlyAcme[0].Salary, 0.001)
}
