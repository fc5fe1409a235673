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

	"github.com/gin-gonic/gin"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	"github.com/wetalkinmedia/PocketWatcha2/internal/config"
	"github.com/wetalkinmedia/PocketWatcha2/internal/database"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
	"github.com/wetalkinmedia/PocketWatcha2/internal/router"
	"github.com/wetalkinmedia/PocketWatcha2/internal/scheduler"
	"github.com/wetalkinmedia/PocketWatcha2/internal/validator"
)

// @title           PocketWatcha API
// @version         1.0
// @description     PocketWatcha allocates a monthly income across budget categories by age, household and city, and tracks spending against the plan.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const (
	dailyTipSchedule = "5 0 * * *"
	shutdownTimeout  = 10 * time.Second
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("database close error", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	store, err := cache.New(cfg.CacheDriver, cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to create insight cache: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnw("cache close error", "error", err)
		}
	}()

	svc := router.NewServices(dbManager.DB(), store, cfg.CacheTTL)

	jobs := scheduler.New()
	if err := jobs.Add("cache-purge", cfg.CachePurge, scheduler.PurgeCache(store)); err != nil {
		return err
	}
	if err := jobs.Add("daily-tip", dailyTipSchedule, scheduler.WarmDailyTip(svc.Tips, time.Now)); err != nil {
		return err
	}
	jobs.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting PocketWatcha server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobs.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
