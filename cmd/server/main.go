// Notification Triage Service - Server Entry Point
//
// Initializes the triage engine and its dependencies and serves the
// triage API for the dashboard frontend.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ssmith129/Medico-2.0-sub000/internal/config"
	"github.com/ssmith129/Medico-2.0-sub000/internal/handler"
	"github.com/ssmith129/Medico-2.0-sub000/internal/logger"
	"github.com/ssmith129/Medico-2.0-sub000/internal/service"
	"github.com/ssmith129/Medico-2.0-sub000/internal/store"
	"github.com/ssmith129/Medico-2.0-sub000/internal/triage"
	"github.com/ssmith129/Medico-2.0-sub000/pkg/redact"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	isDev := os.Getenv("GIN_MODE") != "release"

	zapLogger, err := logger.New(isDev)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting notification triage service",
		zap.Bool("development", isDev),
	)

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	zapLogger.Info("configuration loaded",
		zap.String("port", cfg.Server.Port),
		zap.Bool("triage_enabled", cfg.Triage.Enabled),
		zap.Bool("smart_grouping", cfg.Triage.SmartGrouping),
		zap.Bool("audit_enabled", cfg.Audit.DBPath != ""),
	)

	// Initialize the engine over the built-in reference tables.
	engine := triage.NewEngine(triage.DefaultTables(), cfg.EngineSettings(), zapLogger)

	// Optional audit trail.
	var opts []service.Option
	if cfg.Audit.DBPath != "" {
		auditStore, err := store.NewSQLiteStore(cfg.Audit.DBPath)
		if err != nil {
			zapLogger.Fatal("failed to open audit store", zap.Error(err))
		}
		defer auditStore.Close()
		opts = append(opts, service.WithAuditStore(auditStore))
	}
	opts = append(opts, service.WithHistoryLimit(cfg.Audit.HistoryLimit))

	triageSvc := service.NewTriageService(engine, redact.New(), zapLogger, opts...)

	// Initialize handlers
	triageHandler := handler.NewTriageHandler(triageSvc, zapLogger)
	settingsHandler := handler.NewSettingsHandler(triageSvc, zapLogger)
	actionHandler := handler.NewActionHandler(triageSvc, zapLogger)
	historyHandler := handler.NewHistoryHandler(triageSvc, zapLogger)
	healthHandler := handler.NewHealthHandler(zapLogger)

	// Setup Gin router
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(handler.RecoveryMiddleware(zapLogger))
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.LoggingMiddleware(zapLogger))
	router.Use(handler.CORSMiddleware())

	router.GET("/health", healthHandler.Handle)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/notifications/triage", triageHandler.HandleOne)
		v1.POST("/notifications/triage-batch", triageHandler.HandleBatch)
		v1.POST("/notifications/:id/action", actionHandler.HandleRecord)
		v1.GET("/settings", settingsHandler.HandleGet)
		v1.PATCH("/settings", settingsHandler.HandleUpdate)
		v1.GET("/history", historyHandler.HandleList)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
