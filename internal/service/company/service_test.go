package company

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deletedFiles []string

func (d *deletedFiles) UploadImage(ctx context.Context, folder string, file io.Reader, filename string) (string, error) {
	return folder + "/" + filename, nil
}

func (d *deletedFiles) DeleteFile(ctx context.Context, path string) error {
	*d = append(*d, path)
	return nil
}

func (d *deletedFiles) GetFileURL(ctx context.Context, path string) (string, error) {
	return "/uploads/" + path, nil
}

func newService(t *testing.T) (company.CompanyService, *memory.Store, *deletedFiles) {
	t.Helper()
	store := memory.NewStore()
	files := &deletedFiles{}
	clk := clock.Fixed(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	return NewCompanyService(clk, store.Companies(), store.Employees(), files), store, files
}

func createRequest(name string) company.CreateCompanyRequest {
	return company.CreateCompanyRequest{
		Name:              name,
		Location:          "Dubai",
		CompanyNumber:     "CN-1029",
		LicenseExpiryDate: "2025-02-28",
	}
}

func TestEmployeeCount_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	created, err := svc.Create(ctx, createRequest("Marina Foods"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, created.EmployeeCount)
	assert.Equal(t, "2025-02-28", created.LicenseExpiryDate)

	for _, name := range []string{"Ali", "Bina", "Chen"} {
		_, err := store.Employees().Create(ctx, employee.Employee{CompanyID: created.ID, Name: name})
		require.NoError(t, err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.EmployeeCount)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 3, list[0].EmployeeCount)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newService(t)

	req := createRequest("   ")
	req.LicenseExpiryDate = "2025-13-01"
	_, err := svc.Create(context.Background(), req)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "name")
	assert.Contains(t, errs.ToMap(), "license_expiry_date")
}

func TestList_OrderedByName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	for _, name := range []string{"Zeta Marine", "Alpha Build", "Mid Trade"} {
		_, err := svc.Create(ctx, createRequest(name))
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha Build", list[0].Name)
	assert.Equal(t, "Zeta Marine", list[2].Name)
}

func TestUpdate_ReplacesFields(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	created, err := svc.Create(ctx, createRequest("Old Name"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, company.UpdateCompanyRequest{CreateCompanyRequest: company.CreateCompanyRequest{
		Name:              "New Name",
		LicenseExpiryDate: "2026-01-01",
	}})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "", updated.Location)
	assert.Equal(t, "2026-01-01", updated.LicenseExpiryDate)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	_, err = svc.Update(ctx, 12345, company.UpdateCompanyRequest{CreateCompanyRequest: createRequest("x")})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestDelete_CascadesAndCleansPhotos(t *testing.T) {
	ctx := context.Background()
	svc, store, files := newService(t)

	created, err := svc.Create(ctx, createRequest("Closing Co"))
	require.NoError(t, err)

	withPhoto := employee.Employee{CompanyID: created.ID, Name: "Dina"}
	withPhoto.SetPhotoPath(employee.PhotoPersonal, "employees/personal/a.jpg")
	withPhoto.SetPhotoPath(employee.PhotoID, "employees/id/b.jpg")
	emp, err := store.Employees().Create(ctx, withPhoto)
	require.NoError(t, err)
	_, err = store.Employees().Create(ctx, employee.Employee{CompanyID: created.ID, Name: "Eli"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ElementsMatch(t, []string{"employees/personal/a.jpg", "employees/id/b.jpg"}, []string(*files))

	_, err = store.Employees().GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), company.ErrCompanyNotFound)
}
