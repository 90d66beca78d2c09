package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	approvalapp "github.com/sfgnexus/backend/internal/application/approval"
	documentapp "github.com/sfgnexus/backend/internal/application/document"
	validationapp "github.com/sfgnexus/backend/internal/application/validation"
	"github.com/sfgnexus/backend/internal/domain/approval"
	"github.com/sfgnexus/backend/internal/domain/document"
	"github.com/sfgnexus/backend/internal/domain/shared"
	"github.com/sfgnexus/backend/internal/infrastructure/cache"
	"github.com/sfgnexus/backend/internal/infrastructure/config"
	"github.com/sfgnexus/backend/internal/infrastructure/logger"
	"github.com/sfgnexus/backend/internal/infrastructure/notification"
	"github.com/sfgnexus/backend/internal/infrastructure/persistence"
	"github.com/sfgnexus/backend/internal/infrastructure/telemetry"
	"github.com/sfgnexus/backend/internal/interfaces/http/handler"
	"github.com/sfgnexus/backend/internal/interfaces/http/middleware"
	"github.com/sfgnexus/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SFG Nexus backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Distributed tracing, no-op unless enabled
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if tracerProvider.IsEnabled() {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	checklistRepo := persistence.NewGormChecklistRepository(db.DB)
	approvalRepo := persistence.NewGormApprovalRepository(db.DB)
	workflowRepo := persistence.NewGormWorkflowRepository(db.DB)
	allocator := persistence.NewGormSequenceAllocator(db.DB, cfg.Gating.SequenceMaxRetries)

	// Idempotency store for approval resolutions, Redis with in-memory fallback
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Outbound notifications for blocked progressions and second approvals
	var notifier shared.Notifier = notification.NoopNotifier{}
	if cfg.Notification.Enabled {
		webhook, err := notification.NewWebhookNotifier(cfg.Notification.WebhookURL, cfg.Notification.Timeout, log)
		if err != nil {
			log.Fatal("Failed to create webhook notifier", zap.Error(err))
		}
		notifier = webhook
		log.Info("Webhook notifications enabled", zap.String("url", cfg.Notification.WebhookURL))
	}

	// Approval rules from configuration
	rules := approval.Rules{
		SecondApprovalThreshold: decimal.NewFromFloat(cfg.Gating.SecondApprovalThreshold),
		MandatoryThreshold:      decimal.NewFromFloat(cfg.Gating.MandatoryThreshold),
		MandatoryCategories:     make(map[document.DeliveryType]bool, len(cfg.Gating.MandatoryCategories)),
	}
	for _, category := range cfg.Gating.MandatoryCategories {
		rules.MandatoryCategories[document.DeliveryType(category)] = true
	}

	// Initialize application services
	stageMachine := document.NewStageMachine(nil)
	documentService := documentapp.NewService(documentRepo, auditRepo, allocator, cfg.Gating.RequiredFields)
	conversionGate := documentapp.NewConversionGate(documentRepo, checklistRepo, approvalRepo,
		stageMachine, cfg.Gating.RequiredFields, notifier)
	approvalService := approvalapp.NewService(approvalRepo, workflowRepo, documentRepo, auditRepo,
		rules, idempotencyStore, notifier)
	checklistService := validationapp.NewService(checklistRepo, documentRepo, auditRepo)

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(documentService, conversionGate)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	checklistHandler := handler.NewChecklistHandler(checklistService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Tracing - Open a span per request, enrich it, mark errors
	// 3. Recovery - Catch panics
	// 4. Logger - Log requests
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Document lifecycle: registration, field maintenance, progression
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.POST("", documentHandler.Create)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.GET("/number/:fullNumber", documentHandler.GetByFullNumber)
	documentRoutes.GET("/:id", documentHandler.GetByID)
	documentRoutes.PATCH("/:id", documentHandler.UpdateFields)
	documentRoutes.POST("/:id/transition", documentHandler.Transition)
	documentRoutes.GET("/:id/completeness", documentHandler.GetCompleteness)
	documentRoutes.GET("/:id/audit", documentHandler.GetAuditTrail)

	// Checklist and approvals hang off the document they gate
	documentRoutes.POST("/:id/checks", checklistHandler.RecordCheck)
	documentRoutes.GET("/:id/checks", checklistHandler.GetByDocumentID)
	documentRoutes.GET("/:id/approvals", approvalHandler.ListByDocument)

	// Lineage across stages of one base number
	lineageRoutes := router.NewDomainGroup("lineage", "/lineage")
	lineageRoutes.GET("/:baseNumber", documentHandler.GetLineage)

	// Approval workflow
	approvalRoutes := router.NewDomainGroup("approvals", "/approvals")
	approvalRoutes.POST("", approvalHandler.Request)
	approvalRoutes.GET("/:id", approvalHandler.GetByID)
	approvalRoutes.POST("/:id/resolve", approvalHandler.Resolve)

	r.Register(documentRoutes).
		Register(lineageRoutes).
		Register(approvalRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
