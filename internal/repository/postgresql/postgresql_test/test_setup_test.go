package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies migrations and empties every table.
// Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))

	_, err = db.Exec(ctx, "TRUNCATE TABLE leaves, attendances, employees, companies, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createCompany(t *testing.T, db *database.DB, name string, licenseExpiry time.Time) company.Company {
	t.Helper()
	created, err := postgresql.NewCompanyRepository(db).Create(context.Background(), company.Company{
		Name:              name,
		Location:          "Dubai",
		CompanyNumber:     "CN-" + name,
		LicenseExpiryDate: licenseExpiry,
		CreatedAt:         time.Now(),
	})
	require.NoError(t, err)
	return created
}

func createEmployee(t *testing.T, db *database.DB, companyID int64, name string, passportExpiry time.Time) employee.Employee {
	t.Helper()
	created, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		CompanyID:          companyID,
		Name:               name,
		JobTitle:           "Engineer",
		Salary:             12500.50,
		PassportNumber:     "P-" + name,
		PassportExpiryDate: passportExpiry,
		IDExpiryDate:       date(2030, 1, 1),
		CreatedAt:          time.Now(),
	})
	require.NoError(t, err)
	return created
}
