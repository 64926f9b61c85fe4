package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labaid/labaid-api/docs"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/database"
	"github.com/labaid/labaid-api/internal/http/handler"
	"github.com/labaid/labaid-api/internal/http/middleware"
	"github.com/labaid/labaid-api/internal/http/router"
	"github.com/labaid/labaid-api/internal/jobs"
	"github.com/labaid/labaid-api/internal/logger"
	"github.com/labaid/labaid-api/internal/mailer"
	"github.com/labaid/labaid-api/internal/metrics"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title LabAid API
// @version 1.0
// @description Antibody lot, vial and storage inventory for flow cytometry labs

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system integrations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if basicCfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Secrets come from the environment in development and Key Vault elsewhere
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := migrateSchema(ctx, db, &cfg.Database); err != nil {
			return err
		}
		log.Info("Database schema up to date", zap.String("driver", cfg.Database.Driver))
	}

	// Document storage is optional; uploads answer 503 without it
	docStore, err := storage.NewStore(ctx, &cfg.Storage, log)
	if err != nil {
		log.Warn("Document storage unavailable, continuing without it", zap.Error(err))
		docStore = nil
	} else {
		log.Info("Storage initialized", zap.String("mode", docStore.Driver()))
	}

	// Repositories
	labRepo := repository.NewLabRepository(db)
	userRepo := repository.NewUserRepository(db)
	fluorochromeRepo := repository.NewFluorochromeRepository(db)
	antibodyRepo := repository.NewAntibodyRepository(db)
	lotRepo := repository.NewLotRepository(db)
	vialRepo := repository.NewVialRepository(db)
	storageRepo := repository.NewStorageRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// Services
	tokens := auth.NewTokenIssuer(&cfg.Auth)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)
	authService := service.NewAuthService(db, userRepo, labRepo, tokens, auditLogService, &cfg.Auth, log)
	userService := service.NewUserService(db, userRepo, labRepo, auditLogService, &cfg.Auth, log)
	labService := service.NewLabService(db, labRepo, auditLogService, log)
	fluorochromeService := service.NewFluorochromeService(db, fluorochromeRepo, antibodyRepo, auditLogService, log)
	antibodyService := service.NewAntibodyService(db, antibodyRepo, vialRepo, labRepo, fluorochromeRepo, fluorochromeService, auditLogService, log)
	storageService := service.NewStorageService(db, storageRepo, vialRepo, labRepo, fluorochromeRepo, auditLogService, log)
	lotService := service.NewLotService(db, lotRepo, antibodyRepo, vialRepo, documentRepo, labRepo, storageService, auditLogService, log)
	vialService := service.NewVialService(db, vialRepo, storageRepo, storageService, auditLogService, log)
	ticketService := service.NewTicketService(db, ticketRepo, auditLogService, log)
	documentService := service.NewDocumentService(db, documentRepo, lotRepo, docStore, auditLogService, log)
	dashboardService := service.NewDashboardService(labRepo, lotRepo, vialRepo, antibodyService, lotService, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(tokens, userRepo, cfg.ApiKey.Value, log)
	labFilterMiddleware := middleware.NewLabFilterMiddleware(labRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New()
	}

	rt := router.NewRouter(cfg, log, db, appMetrics, authMiddleware, labFilterMiddleware, rateLimiter, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, log),
		User:         handler.NewUserHandler(userService, log),
		Lab:          handler.NewLabHandler(labService, log),
		Fluorochrome: handler.NewFluorochromeHandler(fluorochromeService, log),
		Antibody:     handler.NewAntibodyHandler(antibodyService, log),
		Lot:          handler.NewLotHandler(lotService, log),
		Vial:         handler.NewVialHandler(vialService, log),
		Storage:      handler.NewStorageHandler(storageService, log),
		Audit:        handler.NewAuditHandler(auditLogService, log),
		Ticket:       handler.NewTicketHandler(ticketService, log),
		Document:     handler.NewDocumentHandler(documentService, cfg.Storage.MaxUploadSizeMB, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService, log),
	})

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log, 10*time.Minute)

		expiryJob := jobs.NewExpiryAlertJob(labRepo, dashboardService, userRepo, mailer.New(&cfg.Mail, log), cfg.App.PublicURL, log)
		if err := jobs.RegisterExpiryAlertJob(scheduler, expiryJob, cfg.Jobs.ExpiryAlertCron); err != nil {
			return fmt.Errorf("failed to register expiry alert job: %w", err)
		}
		if err := jobs.RegisterAuditRetentionJob(scheduler, auditLogService, cfg.Jobs.AuditRetentionDays, cfg.Jobs.AuditRetentionCron, log); err != nil {
			return fmt.Errorf("failed to register audit retention job: %w", err)
		}
		if appMetrics != nil {
			if err := jobs.RegisterMetricsRefreshJob(scheduler, appMetrics, vialRepo, cfg.Jobs.MetricsRefreshCron); err != nil {
				return fmt.Errorf("failed to register metrics refresh job: %w", err)
			}
		}

		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.JobNames()))

		if appMetrics != nil {
			// Failures are logged by the scheduler; the next tick retries
			_ = scheduler.RunNow(jobs.MetricsRefreshJobName, jobs.MetricsRefreshJob(appMetrics, vialRepo))
		}
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  2 * time.Minute,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if scheduler != nil {
			if err := scheduler.Stop(ctx); err != nil {
				log.Warn("Scheduler did not stop in time", zap.Error(err))
			} else {
				log.Info("Scheduler stopped")
			}
		}

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// migrateSchema applies goose migrations on PostgreSQL and AutoMigrate on SQLite
func migrateSchema(ctx context.Context, db *gorm.DB, cfg *config.DatabaseConfig) error {
	if cfg.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return database.Migrate(ctx, sqlDB, "up")
}
