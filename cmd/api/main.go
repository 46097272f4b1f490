package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ttms-admin-api/api/swagger"
	"github.com/noah-isme/ttms-admin-api/internal/handler"
	internalmiddleware "github.com/noah-isme/ttms-admin-api/internal/middleware"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/internal/repository"
	"github.com/noah-isme/ttms-admin-api/internal/service"
	"github.com/noah-isme/ttms-admin-api/pkg/cache"
	"github.com/noah-isme/ttms-admin-api/pkg/config"
	"github.com/noah-isme/ttms-admin-api/pkg/database"
	"github.com/noah-isme/ttms-admin-api/pkg/export"
	"github.com/noah-isme/ttms-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ttms-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ttms-admin-api/pkg/middleware/requestid"
)

// @title TTMS Admin API
// @version 1.0.0
// @description Technology transfer administration: reports, exports, archive and dashboards
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	location, err := time.LoadLocation(cfg.Reports.Timezone)
	if err != nil {
		logr.Fatal("invalid reports timezone", zap.String("timezone", cfg.Reports.Timezone), zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(db, false); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	reportRepo := repository.NewReportRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	browseRepo := repository.NewBrowseRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, auditRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	reportSvc := service.NewReportService(reportRepo, lookupRepo, map[service.ExportFormat]service.DocumentRenderer{
		service.ExportPDF: export.NewPDFExporter(export.PDFOptions{
			FontDir:    cfg.Reports.FontDir,
			FontFamily: cfg.Reports.FontFamily,
			FontFile:   cfg.Reports.FontFile,
		}),
		service.ExportCSV:  export.NewCSVExporter(),
		service.ExportXLSX: export.NewXLSXExporter(),
	}, metricsSvc, logr, service.ReportServiceConfig{Location: location, PageSize: service.DefaultReportPageSize})
	archiveSvc := service.NewArchiveService(archiveRepo, authSvc, cacheSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(reportSvc, browseRepo, cacheSvc, logr, service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL})
	browseSvc := service.NewBrowseService(browseRepo, lookupRepo, reportSvc)

	authHandler := handler.NewAuthHandler(authSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	archiveHandler := handler.NewArchiveHandler(archiveSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	browseHandler := handler.NewBrowseHandler(browseSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics"))
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	r.GET("/health", metricsHandler.Health)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", internalmiddleware.JWT(authSvc), authHandler.Me)

	admin := api.Group("/admin")
	admin.Use(internalmiddleware.AdminOnly(authSvc))
	admin.GET("/dashboard", dashboardHandler.Admin)
	admin.GET("/system/metrics", metricsHandler.System)

	reports := admin.Group("/report")
	reports.GET("/:entity", reportHandler.Page)
	reports.GET("/:entity/statistics", reportHandler.Statistics)
	reports.GET("/:entity/:format", reportHandler.Export)

	browse := admin.Group("/browse")
	browse.GET("/campuses", browseHandler.Campuses)
	browse.GET("/campuses/:campusId/colleges", browseHandler.Colleges)
	browse.GET("/campuses/:campusId/colleges/:collegeId/:entity", browseHandler.Report)

	admin.PATCH("/:entity/:id/archive", internalmiddleware.Audit(auditRepo, models.AuditActionArchive, logr), archiveHandler.Archive)
	admin.PATCH("/:entity/:id/unarchive", internalmiddleware.Audit(auditRepo, models.AuditActionUnarchive, logr), archiveHandler.Unarchive)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
