package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
	maxUploadBytes  int64
}

func NewEmployeeHandler(employeeService employee.EmployeeService, maxUploadBytes int64) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "company_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employees, err := e.employeeService.List(r.Context(), employee.Filter{CompanyID: companyID})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, employees)
}

// Create implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	req, cleanup, ok := e.readRequest(w, r)
	if !ok {
		return
	}
	defer cleanup()

	created, err := e.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create employee", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// GetByID implements EmployeeHandler.
func (e *EmployeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := e.employeeService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, cleanup, ok := e.readRequest(w, r)
	if !ok {
		return
	}
	defer cleanup()

	updated, err := e.employeeService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("Employee update service error", "employee_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := e.employeeService.Delete(r.Context(), id); err != nil {
		slog.Error("Employee delete service error", "employee_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// readRequest accepts either a JSON body or a multipart form whose "data" field
// holds the JSON and whose personal_photo, passport_photo and id_photo fields carry images.
// The returned cleanup closes any opened upload.
func (e *EmployeeHandlerImpl) readRequest(w http.ResponseWriter, r *http.Request) (employee.EmployeeRequest, func(), bool) {
	var req employee.EmployeeRequest
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return req, noop, decodeJSON(w, r, &req, "Employee")
	}

	r.Body = http.MaxBytesReader(w, r.Body, e.maxUploadBytes)
	if err := r.ParseMultipartForm(e.maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return req, noop, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return req, noop, false
	}
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, noop, false
	}

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	req.Photos = make(map[employee.Photo]*employee.PhotoUpload)
	for _, kind := range employee.Photos {
		file, header, err := r.FormFile(string(kind) + "_photo")
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			cleanup()
			slog.Error("Failed to get file from form", "field", string(kind)+"_photo", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return req, noop, false
		}
		opened = append(opened, file)
		req.Photos[kind] = &employee.PhotoUpload{File: file, Filename: header.Filename, Size: header.Size}
	}

	return req, cleanup, true
}
