package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/domain/statistics"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/response"
)

type StatisticsHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	CompanyStats(w http.ResponseWriter, r *http.Request)
	ExpiringPassports(w http.ResponseWriter, r *http.Request)
	ExpiringIDs(w http.ResponseWriter, r *http.Request)
	ExpiringLicenses(w http.ResponseWriter, r *http.Request)
	TodayPresent(w http.ResponseWriter, r *http.Request)
	TodayAbsent(w http.ResponseWriter, r *http.Request)
	PendingLeaves(w http.ResponseWriter, r *http.Request)
	ApprovedLeavesToday(w http.ResponseWriter, r *http.Request)
	AttendanceReport(w http.ResponseWriter, r *http.Request)
}

type StatisticsHandlerImpl struct {
	statisticsService statistics.StatisticsService
}

func NewStatisticsHandler(statisticsService statistics.StatisticsService) StatisticsHandler {
	return &StatisticsHandlerImpl{
		statisticsService: statisticsService,
	}
}

// Dashboard implements StatisticsHandler.
func (h *StatisticsHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.statisticsService.Dashboard(r.Context())
	if err != nil {
		slog.Error("Dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, dashboard)
}

// CompanyStats implements StatisticsHandler.
func (h *StatisticsHandlerImpl) CompanyStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.statisticsService.CompanyStats(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

func writeList[T any](w http.ResponseWriter, items []T, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, items)
}

// ExpiringPassports implements StatisticsHandler.
func (h *StatisticsHandlerImpl) ExpiringPassports(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.ExpiringPassports(r.Context())
	writeList(w, items, err)
}

// ExpiringIDs implements StatisticsHandler.
func (h *StatisticsHandlerImpl) ExpiringIDs(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.ExpiringIDs(r.Context())
	writeList(w, items, err)
}

// ExpiringLicenses implements StatisticsHandler.
func (h *StatisticsHandlerImpl) ExpiringLicenses(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.ExpiringLicenses(r.Context())
	writeList(w, items, err)
}

// TodayPresent implements StatisticsHandler.
func (h *StatisticsHandlerImpl) TodayPresent(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.TodayPresent(r.Context())
	writeList(w, items, err)
}

// TodayAbsent implements StatisticsHandler.
func (h *StatisticsHandlerImpl) TodayAbsent(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.TodayAbsent(r.Context())
	writeList(w, items, err)
}

// PendingLeaves implements StatisticsHandler.
func (h *StatisticsHandlerImpl) PendingLeaves(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.PendingLeaves(r.Context())
	writeList(w, items, err)
}

// ApprovedLeavesToday implements StatisticsHandler.
func (h *StatisticsHandlerImpl) ApprovedLeavesToday(w http.ResponseWriter, r *http.Request) {
	items, err := h.statisticsService.ApprovedLeavesToday(r.Context())
	writeList(w, items, err)
}

// AttendanceReport implements StatisticsHandler.
func (h *StatisticsHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	req := statistics.AttendanceReportRequest{Date: queryString(r, "date")}

	pdf, err := h.statisticsService.AttendanceReport(r.Context(), req)
	if err != nil {
		slog.Error("Attendance report error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := "attendance-report.pdf"
	if req.Date != nil {
		filename = "attendance-" + *req.Date + ".pdf"
	}
	response.PDF(w, filename, pdf)
}
