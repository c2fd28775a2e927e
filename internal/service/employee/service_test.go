package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
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

type recordingFiles struct {
	seq      int
	stored   map[string]bool
	deleted  []string
	failNext bool
}

func newRecordingFiles() *recordingFiles {
	return &recordingFiles{stored: make(map[string]bool)}
}

func (f *recordingFiles) UploadImage(ctx context.Context, folder string, file io.Reader, filename string) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", errors.New("disk full")
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	f.seq++
	path := fmt.Sprintf("%s/%d.jpg", folder, f.seq)
	f.stored[path] = true
	return path, nil
}

func (f *recordingFiles) DeleteFile(ctx context.Context, path string) error {
	delete(f.stored, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *recordingFiles) GetFileURL(ctx context.Context, path string) (string, error) {
	return "/uploads/" + path, nil
}

func photo(name string) *employee.PhotoUpload {
	return &employee.PhotoUpload{File: strings.NewReader("img"), Filename: name, Size: 3}
}

type fixture struct {
	service   employee.EmployeeService
	files     *recordingFiles
	companyID int64
	otherID   int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	a, err := store.Companies().Create(ctx, company.Company{Name: "Desert Rose Trading"})
	require.NoError(t, err)
	b, err := store.Companies().Create(ctx, company.Company{Name: "Palm Holdings"})
	require.NoError(t, err)

	files := newRecordingFiles()
	clk := clock.Fixed(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	return fixture{
		service:   NewEmployeeService(clk, store.Employees(), store.Companies(), files),
		files:     files,
		companyID: a.ID,
		otherID:   b.ID,
	}
}

func validRequest(companyID int64) employee.EmployeeRequest {
	return employee.EmployeeRequest{
		CompanyID:          companyID,
		Name:               "Fatima Noor",
		JobTitle:           "Accountant",
		Salary:             12500.50,
		PassportNumber:     "P1234567",
		PassportExpiryDate: "2026-03-01",
		IDExpiryDate:       "2025-11-15",
	}
}

func TestCreate_WithPhotos(t *testing.T) {
	f := setup(t)
	req := validRequest(f.companyID)
	req.Photos = map[employee.Photo]*employee.PhotoUpload{
		employee.PhotoPersonal: photo("me.png"),
		employee.PhotoPassport: photo("passport.jpg"),
	}

	created, err := f.service.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Desert Rose Trading", created.CompanyName)
	assert.Equal(t, "2026-03-01", created.PassportExpiryDate)
	require.NotNil(t, created.PersonalPhotoURL)
	assert.True(t, strings.HasPrefix(*created.PersonalPhotoURL, "/uploads/employees/personal/"))
	require.NotNil(t, created.PassportPhotoURL)
	assert.Nil(t, created.IDPhotoURL)
	assert.Len(t, f.files.stored, 2)
}

func TestCreate_UnknownCompany(t *testing.T) {
	f := setup(t)
	req := validRequest(404)
	req.Photos = map[employee.Photo]*employee.PhotoUpload{employee.PhotoID: photo("id.jpg")}

	_, err := f.service.Create(context.Background(), req)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.Empty(t, f.files.stored)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	req := validRequest(f.companyID)
	req.Name = ""
	req.IDExpiryDate = "15/11/2025"
	req.Photos = map[employee.Photo]*employee.PhotoUpload{
		employee.PhotoPersonal: {File: strings.NewReader(""), Filename: "me.jpg", Size: 0},
		employee.PhotoPassport: photo("passport.gif"),
		employee.PhotoID:       {File: strings.NewReader("x"), Filename: "id.jpg", Size: employee.MaxPhotoSize + 1},
	}

	_, err := f.service.Create(context.Background(), req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "name")
	assert.Contains(t, m, "id_expiry_date")
	assert.Contains(t, m, "personal_photo")
	assert.Contains(t, m, "passport_photo")
	assert.Contains(t, m, "id_photo")
	assert.Empty(t, f.files.stored)
}

func TestCreate_UploadFailureCleansUp(t *testing.T) {
	f := setup(t)
	req := validRequest(f.companyID)
	req.Photos = map[employee.Photo]*employee.PhotoUpload{
		employee.PhotoPersonal: photo("me.jpg"),
		employee.PhotoPassport: photo("passport.jpg"),
	}

	// Personal uploads first, then passport fails.
	_, err := f.service.Create(context.Background(), withFailureOnSecond(f.files, req))
	require.Error(t, err)
	assert.Empty(t, f.files.stored)
	assert.Len(t, f.files.deleted, 1)
}

// withFailureOnSecond arms the fake once the first photo has been read.
func withFailureOnSecond(files *recordingFiles, req employee.EmployeeRequest) employee.EmployeeRequest {
	first := req.Photos[employee.PhotoPersonal]
	first.File = io.MultiReader(first.File, armReader{files})
	return req
}

type armReader struct{ files *recordingFiles }

func (a armReader) Read(p []byte) (int, error) {
	a.files.failNext = true
	return 0, io.EOF
}

func TestUpdate_ReplacesPhotoAfterWrite(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req := validRequest(f.companyID)
	req.Photos = map[employee.Photo]*employee.PhotoUpload{employee.PhotoPersonal: photo("old.jpg")}
	created, err := f.service.Create(ctx, req)
	require.NoError(t, err)
	oldURL := *created.PersonalPhotoURL

	update := validRequest(f.otherID)
	update.Name = "Fatima Noor Al Sayed"
	update.Photos = map[employee.Photo]*employee.PhotoUpload{employee.PhotoPersonal: photo("new.jpg")}
	updated, err := f.service.Update(ctx, created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, "Palm Holdings", updated.CompanyName)
	assert.Equal(t, "Fatima Noor Al Sayed", updated.Name)
	assert.NotEqual(t, oldURL, *updated.PersonalPhotoURL)
	assert.Equal(t, []string{strings.TrimPrefix(oldURL, "/uploads/")}, f.files.deleted)

	// Without new files the stored photo is kept.
	kept, err := f.service.Update(ctx, created.ID, validRequest(f.otherID))
	require.NoError(t, err)
	assert.Equal(t, *updated.PersonalPhotoURL, *kept.PersonalPhotoURL)

	_, err = f.service.Update(ctx, created.ID, validRequest(999))
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	_, err = f.service.Update(ctx, 999, validRequest(f.companyID))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDelete_RemovesPhotos(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req := validRequest(f.companyID)
	req.Photos = map[employee.Photo]*employee.PhotoUpload{
		employee.PhotoPersonal: photo("me.jpg"),
		employee.PhotoID:       photo("id.jpeg"),
	}
	created, err := f.service.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))
	assert.Empty(t, f.files.stored)
	assert.Len(t, f.files.deleted, 2)

	_, err = f.service.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, f.service.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestList_FilterByCompany(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for i, companyID := range []int64{f.companyID, f.otherID, f.companyID} {
		req := validRequest(companyID)
		req.Name = fmt.Sprintf("Employee %d", i)
		_, err := f.service.Create(ctx, req)
		require.NoError(t, err)
	}

	all, err := f.service.List(ctx, employee.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Employee 0", all[0].Name)

	filtered, err := f.service.List(ctx, employee.Filter{CompanyID: &f.companyID})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}
