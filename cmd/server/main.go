package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	acquisitionapp "github.com/shelfmaster/backend/internal/application/acquisition"
	auditapp "github.com/shelfmaster/backend/internal/application/audit"
	catalogapp "github.com/shelfmaster/backend/internal/application/catalog"
	identityapp "github.com/shelfmaster/backend/internal/application/identity"
	lendingapp "github.com/shelfmaster/backend/internal/application/lending"
	reportapp "github.com/shelfmaster/backend/internal/application/report"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/auth"
	"github.com/shelfmaster/backend/internal/infrastructure/config"
	"github.com/shelfmaster/backend/internal/infrastructure/event"
	"github.com/shelfmaster/backend/internal/infrastructure/logger"
	"github.com/shelfmaster/backend/internal/infrastructure/notification"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence"
	"github.com/shelfmaster/backend/internal/infrastructure/pricing"
	"github.com/shelfmaster/backend/internal/infrastructure/scheduler"
	"github.com/shelfmaster/backend/internal/interfaces/http/handler"
	"github.com/shelfmaster/backend/internal/interfaces/http/middleware"
	"github.com/shelfmaster/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting ShelfMaster server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Database
	dbLogLevel := gormlogger.Silent
	if cfg.App.Env == "development" {
		dbLogLevel = gormlogger.Warn
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, dbLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Repositories
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	overdueRepo := persistence.NewGormOverdueRepository(db.DB)
	penaltyRepo := persistence.NewGormPenaltyRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	bookRepo := persistence.NewGormBookRepository(db.DB)
	copyRepo := persistence.NewGormCopyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	acquisitionRepo := persistence.NewGormAcquisitionRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	vendorPaymentRepo := persistence.NewGormVendorPaymentRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by redis",
			zap.String("host", cfg.Redis.Host),
		)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	clock := shared.SystemClock{}
	priceResolver := pricing.NewEbayPriceResolver(cfg.Pricing, log)

	// Application services
	loanService := lendingapp.NewLoanService(
		loanRepo, penaltyRepo, paymentRepo,
		copyRepo, bookRepo, userRepo, auditRepo,
		priceResolver, clock, log,
	)
	scanService := lendingapp.NewOverdueScanService(
		loanRepo, overdueRepo, penaltyRepo, copyRepo, clock, log,
	)
	catalogService := catalogapp.NewCatalogService(bookRepo, copyRepo, auditRepo, clock, log)
	userService := identityapp.NewUserService(userRepo, auditRepo, clock, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	acquisitionService := acquisitionapp.NewAcquisitionService(
		acquisitionRepo, vendorRepo, vendorPaymentRepo,
		bookRepo, copyRepo, auditRepo, clock, log,
	)
	reportService := reportapp.NewReportService(loanRepo, penaltyRepo, paymentRepo, log)
	auditService := auditapp.NewAuditService(auditRepo, log)

	// Event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)
	emailSender := notification.NewSMTPSender(cfg.SMTP, log)
	reminderHandler := notification.NewOverdueReminderHandler(emailSender, userRepo, copyRepo, bookRepo, log)
	eventBus.Subscribe(reminderHandler)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Failed to stop event bus", zap.Error(err))
		}
	}()

	loanService.SetEventPublisher(eventBus)
	catalogService.SetEventPublisher(eventBus)
	acquisitionService.SetEventPublisher(eventBus)
	scanService.SetEventBus(eventBus)

	// Overdue scanner
	if cfg.Scanner.Enabled {
		scanner := scheduler.NewOverdueScanner(scanService, cfg.Scanner, log)
		if err := scanner.Start(context.Background()); err != nil {
			log.Fatal("Failed to start overdue scanner", zap.Error(err))
		}
		defer func() {
			if err := scanner.Stop(context.Background()); err != nil {
				log.Error("Failed to stop overdue scanner", zap.Error(err))
			}
		}()
		log.Info("Overdue scanner started",
			zap.Duration("sweep_interval", cfg.Scanner.SweepInterval),
		)
	}

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Lending:     handler.NewLendingHandler(loanService, scanService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Acquisition: handler.NewAcquisitionHandler(acquisitionService),
		Report:      handler.NewReportHandler(reportService),
		Audit:       handler.NewAuditHandler(auditService),
	}
	engine := router.New(handlers, router.Config{
		AuthService: authService,
		CORS: middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		},
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
