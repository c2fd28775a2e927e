package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-admin-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/company"
	employeeService "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/file"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/service/leave"
	statisticsService "github.com/cmlabs-hris/hr-admin-backend-go/internal/service/statistics"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-admin"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       cfg.Database.MinConns,
		ConnectRetries: cfg.Database.ConnectRetries,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	statisticsRepo := postgresql.NewStatisticsRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		return err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	clk := clock.NewGulfClock()
	authService := serviceAuth.NewAuthService(clk, userRepo, JWTService)
	companyService := serviceCompany.NewCompanyService(clk, companyRepo, employeeRepo, fileService)
	employeeSvc := employeeService.NewEmployeeService(clk, employeeRepo, companyRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, clk, attendanceRepo, employeeRepo)
	leaveService := leave.NewLeaveService(transactor, clk, leaveRepo, employeeRepo)
	statisticsSvc := statisticsService.NewStatisticsService(clk, cfg.Statistics.ExpiryWindowDays, statisticsRepo, companyRepo)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:      logger,
			LogLevel:    cfg.SlogLevel(),
			CORSOrigins: cfg.App.CORSOrigins,
			UploadsDir:  fileStorage.BasePath(),
		},
		JWTService,
		metrics.NewHTTPMetrics(),
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewCompanyHandler(companyService),
		appHTTP.NewEmployeeHandler(employeeSvc, cfg.Storage.MaxUploadSize),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.NewStatisticsHandler(statisticsSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
