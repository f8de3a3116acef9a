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

	"github.com/morphergyx/inquiry-api/docs"
	"github.com/morphergyx/inquiry-api/internal/auth"
	"github.com/morphergyx/inquiry-api/internal/config"
	"github.com/morphergyx/inquiry-api/internal/database"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/http/handler"
	"github.com/morphergyx/inquiry-api/internal/http/middleware"
	"github.com/morphergyx/inquiry-api/internal/http/router"
	"github.com/morphergyx/inquiry-api/internal/jobs"
	"github.com/morphergyx/inquiry-api/internal/logger"
	"github.com/morphergyx/inquiry-api/internal/metrics"
	"github.com/morphergyx/inquiry-api/internal/notify"
	"github.com/morphergyx/inquiry-api/internal/repository"
	"github.com/morphergyx/inquiry-api/internal/service"
	"go.uber.org/zap"
)

// @title Morphergyx Inquiry API
// @version 1.0
// @description Captures website inquiries and exposes the admin triage API

// @contact.name API Support
// @contact.email support@morphergyx.com

// @host localhost:5000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

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

	if basicCfg.App.Environment == "development" || basicCfg.App.Environment == "local" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	} else {
		docs.SwaggerInfo.Host = ""
	}

	// Secrets come from the environment in development and Key Vault elsewhere
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated", zap.String("driver", cfg.Database.Driver))
	}

	appMetrics := metrics.New()

	emailSender, err := notify.NewSender(ctx, &cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Repositories
	inquiryRepo := repository.NewInquiryRepository(db)

	// Services
	admin := domain.AdminIdentity{
		ID:    cfg.Auth.AdminID,
		Name:  cfg.Auth.AdminName,
		Email: cfg.Auth.AdminEmail,
	}
	notificationService := service.NewNotificationService(emailSender, inquiryRepo, cfg.Notifications, cfg.App.PublicURL, appMetrics, log)
	inquiryService := service.NewInquiryService(inquiryRepo, notificationService, admin, appMetrics, log)

	tokens := auth.NewTokenIssuer(&cfg.Auth)
	authService := service.NewAuthService(auth.NewAdminAccount(&cfg.Auth), tokens, appMetrics, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	inquiryHandler := handler.NewInquiryHandler(inquiryService, cfg.Server.MaxBodyBytes, log)
	authHandler := handler.NewAuthHandler(authService, cfg.Server.MaxBodyBytes, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		appMetrics,
		authMiddleware,
		rateLimiter,
		inquiryHandler,
		authHandler,
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.FollowUpReminderEnabled {
		scheduler = jobs.NewScheduler(log)
		job := jobs.NewFollowUpReminderJob(
			inquiryRepo,
			emailSender,
			cfg.Notifications.AdminEmail,
			appMetrics,
			log,
			cfg.Jobs.FollowUpReminderTimeoutDuration(),
		)
		if err := jobs.RegisterFollowUpReminderJob(scheduler, job, cfg.Jobs.FollowUpReminderCron); err != nil {
			log.Error("Failed to register follow-up reminder job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Follow-up reminders disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// in-flight confirmation and admin emails
		notificationService.Wait()

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
