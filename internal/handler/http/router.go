package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	CORSOrigins []string
	// UploadsDir is served read-only under /uploads/.
	UploadsDir string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	httpMetrics *metrics.HTTPMetrics,
	authHandler AuthHandler,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	statisticsHandler StatisticsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.RequestID)
	r.Use(httpMetrics.Middleware)

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", httpMetrics.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", staticFiles(opts.UploadsDir)))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", companyHandler.List)
				r.Post("/", companyHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", companyHandler.GetByID)
					r.Put("/", companyHandler.Update)
					r.Delete("/", companyHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetByID)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Get("/employee/{employeeID}", attendanceHandler.ListByEmployee)
				r.Post("/check-in/{employeeID}", attendanceHandler.CheckIn)
				r.Post("/check-out/{employeeID}", attendanceHandler.CheckOut)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetByID)
					r.Put("/", attendanceHandler.Update)
					r.Delete("/", attendanceHandler.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.GetByID)
					r.Put("/", leaveHandler.Update)
					r.Delete("/", leaveHandler.Delete)
					r.Put("/status", leaveHandler.Review)
				})
			})

			r.Route("/statistics", func(r chi.Router) {
				r.Get("/dashboard", statisticsHandler.Dashboard)
				r.Get("/companies/expiring-licenses", statisticsHandler.ExpiringLicenses)
				r.Get("/companies/{id}", statisticsHandler.CompanyStats)
				r.Get("/employees/expiring-passports", statisticsHandler.ExpiringPassports)
				r.Get("/employees/expiring-ids", statisticsHandler.ExpiringIDs)
				r.Get("/attendance/today-present", statisticsHandler.TodayPresent)
				r.Get("/attendance/today-absent", statisticsHandler.TodayAbsent)
				r.Get("/attendance/report.pdf", statisticsHandler.AttendanceReport)
				r.Get("/leaves/pending", statisticsHandler.PendingLeaves)
				r.Get("/leaves/approved-today", statisticsHandler.ApprovedLeavesToday)
			})
		})
	})
	return r
}

// staticFiles serves dir without directory listings.
func staticFiles(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
