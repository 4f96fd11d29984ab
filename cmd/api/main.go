package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mentor-collab/internal/app"
	"mentor-collab/internal/config"
	apihttp "mentor-collab/internal/http"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init app", zap.Error(err))
	}
	defer application.Close()

	if cfg.SeedFile != "" {
		data, err := app.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal("load seed", zap.Error(err))
		}
		if err := application.Seed(ctx, data); err != nil {
			logger.Fatal("apply seed", zap.Error(err))
		}
		logger.Info("seed applied",
			zap.Int("mentorships", len(data.Mentorships)),
			zap.Int("ratings", len(data.Ratings)),
		)
	}

	router := apihttp.NewRouter(
		logger,
		apihttp.NewMentorshipHandler(logger, application.Suggestions, application.Requests, application.Collaborations),
		apihttp.NewRequestHandler(logger, application.Requests),
		apihttp.NewCollaborationHandler(logger, application.Collaborations),
		application.JWT,
		application.Health,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("storage", cfg.StorageDriver),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
