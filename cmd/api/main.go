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

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	adjustmentService "github.com/cmlabs-hris/attendance-backend-go/internal/service/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	punchService "github.com/cmlabs-hris/attendance-backend-go/internal/service/punch"
	scheduleService "github.com/cmlabs-hris/attendance-backend-go/internal/service/schedule"
	timesheetService "github.com/cmlabs-hris/attendance-backend-go/internal/service/timesheet"
)

type repositories struct {
	transactor  database.Transactor
	employees   employee.EmployeeRepository
	shiftGroups schedule.ShiftGroupRepository
	punches     punch.PunchRepository
	adjustments adjustment.AdjustmentRepository
	close       func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.Store.Type {
	case config.StoreTypeMemory:
		store := memory.NewStore()
		if cfg.Store.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.Store.SeedFile); err != nil {
				return repositories{}, err
			}
		}
		slog.Warn("using in-memory store, data is lost on restart")
		return repositories{
			transactor:  memory.NewTransactor(store),
			employees:   memory.NewEmployeeRepository(store),
			shiftGroups: memory.NewShiftGroupRepository(store),
			punches:     memory.NewPunchRepository(store),
			adjustments: memory.NewAdjustmentRepository(store),
			close:       func() {},
		}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repositories{
			transactor:  postgresql.NewTransactor(db),
			employees:   postgresql.NewEmployeeRepository(db),
			shiftGroups: postgresql.NewShiftGroupRepository(db),
			punches:     postgresql.NewPunchRepository(db),
			adjustments: postgresql.NewAdjustmentRepository(db),
			close:       db.Close,
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "store", cfg.Store.Type, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.AllowedSkew)
	fileService := file.NewFileService(fileStorage)

	scheduleSvc := scheduleService.NewScheduleService(repos.employees, repos.shiftGroups, cfg.Schedule)
	punchSvc := punchService.NewPunchService(repos.transactor, repos.punches, repos.employees)
	adjustmentSvc := adjustmentService.NewAdjustmentService(repos.transactor, repos.adjustments, repos.punches, repos.employees, fileService)
	timesheetSvc := timesheetService.NewTimesheetService(repos.punches, repos.employees, repos.adjustments, scheduleSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
			UploadsDir:     fileStorage.Dir(),
		},
		JWTService,
		appHTTP.NewPunchHandler(punchSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewAdjustmentHandler(adjustmentSvc),
		appHTTP.NewReportHandler(timesheetSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", server.Addr, "store", cfg.Store.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
