package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launch-countdown/internal/core/cache"
	"launch-countdown/internal/core/clock"
	"launch-countdown/internal/core/config"
	"launch-countdown/internal/core/logger"
	"launch-countdown/internal/core/server"
	bannerdomain "launch-countdown/internal/features/banners/domain"
	bannerhandler "launch-countdown/internal/features/banners/handler"
	bannerservice "launch-countdown/internal/features/banners/service"
	countdownadapter "launch-countdown/internal/features/countdown/adapters"
	countdowndomain "launch-countdown/internal/features/countdown/domain"
	countdownhandler "launch-countdown/internal/features/countdown/handler"
	countdownservice "launch-countdown/internal/features/countdown/service"

	"go.uber.org/zap"
)

// @title Launch Countdown API
// @version 1.0
// @description This API exposes the book launch countdown and the sticky banner scroll visibility.
// @contact.name API Support
// @license.name Apache-2.0
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize Countdown Engine
	initial, err := countdowndomain.NewTimeRemaining(cfg.Countdown.Hours, cfg.Countdown.Minutes, cfg.Countdown.Seconds)
	if err != nil {
		l.Fatal("Invalid countdown duration", zap.Error(err))
	}
	engine, err := countdownservice.NewEngine(initial)
	if err != nil {
		l.Fatal("Failed to create countdown engine", zap.Error(err))
	}

	schedulerOpts := []countdownservice.Option{
		countdownservice.WithCatchUp(cfg.Countdown.CatchUp),
	}

	// Initialize the optional Redis snapshot mirror and run Health Check
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Failed to create Redis adapter", zap.Error(err))
		}
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			l.Fatal("Redis Health Check Failed", zap.Error(err))
		}
		l.Info("Redis connection verified")

		publisher := countdownadapter.NewRedisSnapshotPublisher(redisCache, cfg.Countdown.Name, cfg.Countdown.TickInterval)
		schedulerOpts = append(schedulerOpts, countdownservice.WithPublisher(publisher))
	}

	scheduler, err := countdownservice.NewScheduler(engine, clock.SystemClock, cfg.Countdown.TickInterval, schedulerOpts...)
	if err != nil {
		l.Fatal("Failed to create countdown scheduler", zap.Error(err))
	}
	countdownHdl := countdownhandler.NewCountdownHandler(engine)

	// Initialize Scroll Visibility Controller & Handler
	controller, err := bannerdomain.NewController(cfg.Scroll.Threshold)
	if err != nil {
		l.Fatal("Invalid scroll threshold", zap.Error(err), zap.Float64("threshold", cfg.Scroll.Threshold))
	}
	visibilitySvc := bannerservice.NewVisibilityService(controller)
	bannerHdl := bannerhandler.NewBannerHandler(visibilitySvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/countdown", countdownHdl.GetCountdown)
	srv.App.Post("/banner/visibility", bannerHdl.EvaluateVisibility)
	srv.App.Post("/banner/subscriptions", bannerHdl.OpenSubscription)
	srv.App.Put("/banner/subscriptions/:id", bannerHdl.SignalSubscription)
	srv.App.Get("/banner/subscriptions/:id", bannerHdl.GetSubscription)
	srv.App.Delete("/banner/subscriptions/:id", bannerHdl.CloseSubscription)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	activation := scheduler.Start(ctx)
	defer activation.Stop()
	defer visibilitySvc.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}

	l.Info("Application stopped")
}
