package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/quickai/config"
	"github.com/d60-Lab/quickai/internal/ai"
	"github.com/d60-Lab/quickai/internal/api/handler"
	"github.com/d60-Lab/quickai/internal/api/router"
	"github.com/d60-Lab/quickai/internal/entitlement"
	"github.com/d60-Lab/quickai/internal/repository"
	"github.com/d60-Lab/quickai/internal/service"
	"github.com/d60-Lab/quickai/pkg/cache"
	"github.com/d60-Lab/quickai/pkg/database"
	"github.com/d60-Lab/quickai/pkg/logger"
	"github.com/d60-Lab/quickai/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := must(tracing.Init(ctx, cfg))
	defer func() { _ = shutdownTracing(context.Background()) }()

	db := must(database.InitDB(cfg))
	redisClient := must(cache.InitRedis(cfg))

	// External collaborators: identity store + generation providers.
	entStore := entitlement.NewClerkStore(cfg.Clerk)
	completer := ai.NewOpenAIClient(cfg.OpenAI)
	imageGen := ai.NewClipDropClient(cfg.ClipDrop)
	imageStore := ai.NewCloudinaryClient(cfg.Cloudinary)
	extractor := ai.NewPDFExtractor()

	creationRepo := repository.NewCreationRepository(db)
	creationSvc := service.NewCreationService(creationRepo, redisClient, cfg.Redis.FeedTTL)
	gate := service.NewUsageGate(entStore, cfg.Quota.FreeLimit)
	genSvc := service.NewGenerationService(gate, completer, imageGen, imageStore, extractor, creationSvc)

	h := handler.New(genSvc, creationSvc)
	engine := must(router.New(cfg, h))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
