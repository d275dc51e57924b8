package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fleetapp "github.com/fleet/backend/internal/application/fleet"
	identityapp "github.com/fleet/backend/internal/application/identity"
	payrollapp "github.com/fleet/backend/internal/application/payroll"
	"github.com/fleet/backend/internal/domain/shared/valueobject"
	"github.com/fleet/backend/internal/infrastructure/auth"
	"github.com/fleet/backend/internal/infrastructure/config"
	"github.com/fleet/backend/internal/infrastructure/export"
	"github.com/fleet/backend/internal/infrastructure/logger"
	"github.com/fleet/backend/internal/infrastructure/mailer"
	"github.com/fleet/backend/internal/infrastructure/persistence"
	"github.com/fleet/backend/internal/infrastructure/scheduler"
	"github.com/fleet/backend/internal/interfaces/http/handler"
	"github.com/fleet/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting fleet payroll backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	truckRepo := persistence.NewGormTruckRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	tripRepo := persistence.NewGormTripRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	advanceRepo := persistence.NewGormAdvancePaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionHistoryRepository(db.DB)
	minimumRepo := persistence.NewGormMinimumGuaranteedRepository(db.DB)
	otherItemRepo := persistence.NewGormOtherItemRepository(db.DB)
	summaryRepo := persistence.NewGormSummaryRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	passwordService := auth.NewPasswordService()
	excelExporter := export.NewExcelExporter(summaryRepo, periodRepo, driverRepo)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, passwordService)
	driverService := fleetapp.NewDriverService(driverRepo)
	tripService := fleetapp.NewTripService(tripRepo, driverRepo, clientRepo)
	expenseService := fleetapp.NewExpenseService(expenseRepo, driverRepo, tripRepo)
	advanceService := fleetapp.NewAdvanceService(advanceRepo, driverRepo)
	referenceService := fleetapp.NewReferenceService(truckRepo, clientRepo)

	defaultCommission, err := valueobject.NewFraction(decimal.NewFromFloat(cfg.Payroll.DefaultCommission))
	if err != nil {
		log.Fatal("Invalid default commission", zap.Error(err))
	}
	historyService := payrollapp.NewHistoryService(commissionRepo, minimumRepo, driverRepo, payrollapp.RateDefaults{
		Commission:        defaultCommission,
		MinimumGuaranteed: decimal.NewFromFloat(cfg.Payroll.DefaultMinimumGuaranteed),
	})
	periodService := payrollapp.NewPeriodService(periodRepo, tripRepo)

	var notifier payrollapp.PeriodNotifier
	if cfg.Mail.Enabled {
		smtpMailer := mailer.NewSMTPMailer(cfg.Mail)
		notifier = payrollapp.NewNotificationService(periodRepo, excelExporter, smtpMailer, log)
	} else {
		log.Info("Period report mail disabled")
	}

	calculationService := payrollapp.NewCalculationService(
		summaryRepo,
		periodRepo,
		otherItemRepo,
		driverRepo,
		tripRepo,
		expenseRepo,
		advanceRepo,
		historyService,
		notifier,
		log,
	)
	otherItemService := payrollapp.NewOtherItemService(otherItemRepo, periodRepo, summaryRepo, driverRepo)

	// HTTP layer
	engine := router.Setup(cfg, log, jwtService, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Driver:    handler.NewDriverHandler(driverService),
		History:   handler.NewHistoryHandler(historyService),
		Trip:      handler.NewTripHandler(tripService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Advance:   handler.NewAdvanceHandler(advanceService),
		Reference: handler.NewReferenceHandler(referenceService),
		Period:    handler.NewPeriodHandler(periodService, excelExporter),
		Payroll:   handler.NewPayrollHandler(calculationService),
		OtherItem: handler.NewOtherItemHandler(otherItemService),
	})

	// Monthly payroll generation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var payrollScheduler *scheduler.PayrollScheduler
	if cfg.Scheduler.Enabled {
		payrollScheduler = scheduler.NewPayrollScheduler(cfg.Scheduler, periodService, calculationService, log)
		if err := payrollScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start payroll scheduler", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if payrollScheduler != nil {
		if err := payrollScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler shutdown error", zap.Error(err))
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}
