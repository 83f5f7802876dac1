package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sarveshmore2004/Institute-Automation-System-sub002/api/swagger"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/handler"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/middleware"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/repository"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/service"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/cache"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/config"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/database"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/logger"
	corsmiddleware "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/middleware/cors"
	reqidmiddleware "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/middleware/requestid"
)

// @title Institute Registration & Transcript API
// @version 1.0.0
// @description Course registration workflow and SPI/CPI transcript reports
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Transcript.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, transcript cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Transcript.CacheTTL, logr, true)
		}
	}

	registrationRepo := repository.NewRegistrationRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var auditSvc *service.AuditService
	if cfg.Audit.Enabled {
		auditSvc = service.NewAuditService(auditRepo, cfg.Audit, logr)
		auditSvc.Start(ctx)
		defer auditSvc.Stop()
	}

	registrationSvc := service.NewRegistrationService(registrationRepo, catalogRepo, auditSvc, metricsSvc, nil, logr, cfg.Workflow.BulkApproveMaxItems)
	transcriptSvc := service.NewTranscriptService(enrollmentRepo, cacheSvc, models.DefaultGradePoints(), logr)

	registrationHandler := handler.NewRegistrationHandler(registrationSvc)
	transcriptHandler := handler.NewTranscriptHandler(transcriptSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/registrations", registrationHandler.Submit)
		api.GET("/registrations/pending", registrationHandler.ListPending)
		api.POST("/registrations/approve", registrationHandler.Approve)
		api.POST("/registrations/reject", registrationHandler.Reject)
		api.POST("/registrations/bulk-approve", registrationHandler.BulkApprove)

		api.GET("/students/:id/courses/completed", transcriptHandler.CompletedRecords)
		api.GET("/students/:id/performance", transcriptHandler.Performance)
		api.POST("/performance/compute", transcriptHandler.Compute)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
}
