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
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-gateway/api/swagger"
	"github.com/noah-isme/classroom-gateway/internal/handler"
	"github.com/noah-isme/classroom-gateway/internal/remote"
	"github.com/noah-isme/classroom-gateway/internal/repository"
	"github.com/noah-isme/classroom-gateway/internal/service"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	"github.com/noah-isme/classroom-gateway/pkg/cache"
	"github.com/noah-isme/classroom-gateway/pkg/config"
	"github.com/noah-isme/classroom-gateway/pkg/database"
	"github.com/noah-isme/classroom-gateway/pkg/logger"
	"github.com/noah-isme/classroom-gateway/pkg/storage"
)

// @title Classroom Gateway API
// @version 1.0.0
// @description Gateway behind the classroom assignment card, submissions modal and student search.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}
	defer app.close()

	app.start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	app.stop()
}

type application struct {
	cfg      *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	activity *service.ActivityService
	exports  *service.ExportService
	redis    *redis.Client
	db       *sqlx.DB
	cancel   context.CancelFunc
}

func buildApp(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logr}
	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{}

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.redis = client
		redisRepo := repository.NewCacheRepository(client, "classroom", logr)
		checks["redis"] = redisRepo
		cacheRepo = redisRepo
	} else {
		cacheRepo = repository.NewMemoryCacheRepository()
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.StatusCache.TTL, logr, cfg.StatusCache.Enabled)

	activityCfg := service.ActivityServiceConfig{
		Enabled: cfg.Activity.Enabled,
		Workers: cfg.Activity.Workers,
		Retries: cfg.Activity.Retries,
	}
	if cfg.Activity.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			app.close()
			return nil, err
		}
		app.db = db
		activityRepo := repository.NewActivityRepository(db)
		checks["postgres"] = activityRepo
		app.activity = service.NewActivityService(activityRepo, metrics, logr, activityCfg)
	} else {
		app.activity = service.NewActivityService(nil, metrics, logr, activityCfg)
	}

	loc := cfg.Location()
	forms := validation.New(validation.Options{Location: loc, MaxFileSize: cfg.Uploads.MaxFileSizeBytes})
	identity := service.NewIdentityService(service.IdentityConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	client := remote.NewClassroomClient(cfg.ClassroomAPI, &http.Client{Timeout: cfg.ClassroomAPI.Timeout}, logr, metrics)
	statuses := service.NewStatusResolver(client, cacheSvc, cfg.StatusCache.TTL, metrics, logr)
	assignments := service.NewAssignmentService(client, statuses, app.activity, logr)
	submissions := service.NewSubmissionService(client, statuses, app.activity, logr)
	downloads := service.NewDownloadService(service.NewDownloadRegistry(client, metrics, logr), statuses, submissions, app.activity, logr)
	enrollments := service.NewEnrollmentService(client, forms, app.activity, logr)
	content := service.NewContentService(client, app.activity, logr)

	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			app.close()
			return nil, err
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		app.exports = service.NewExportService(submissions, store, signer, service.ExportConfig{
			Enabled:   true,
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
			Location:  loc,
		}, logr, nil, nil, app.activity)
	}

	app.router = newRouter(cfg, logr, metrics, identity, handlers{
		assignments: handler.NewAssignmentHandler(assignments, forms, cfg.Uploads.MaxFileSizeBytes),
		submissions: handler.NewSubmissionHandler(submissions, forms, cfg.Uploads.MaxFileSizeBytes),
		downloads:   handler.NewDownloadHandler(downloads),
		enrollments: handler.NewEnrollmentHandler(enrollments),
		content:     handler.NewContentHandler(content, forms, cfg.Uploads.MaxFileSizeBytes),
		forms:       handler.NewFormHandler(forms, cfg.Uploads.MaxFileSizeBytes),
		exports:     newExportHandler(app.exports, forms),
		activity:    handler.NewActivityHandler(app.activity),
		metrics:     handler.NewMetricsHandler(metrics, checks),
	})
	return app, nil
}

func newExportHandler(exports *service.ExportService, forms *validation.Validator) *handler.ExportHandler {
	if exports == nil {
		return nil
	}
	return handler.NewExportHandler(exports, forms)
}

func (a *application) start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.activity.Start(workerCtx)
	if a.exports != nil {
		go a.exports.RunCleanup(workerCtx, a.cfg.Exports.CleanupInterval)
	}
}

func (a *application) stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.activity.Stop()
}

func (a *application) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close postgres", zap.Error(err))
		}
	}
}
