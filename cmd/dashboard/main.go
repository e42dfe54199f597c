package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/ytsentiment/config"
	"github.com/spacesedan/ytsentiment/internal/clients"
	"github.com/spacesedan/ytsentiment/internal/dashboard"
	"github.com/spacesedan/ytsentiment/internal/logging"
	"github.com/spacesedan/ytsentiment/internal/monitoring"
	"github.com/spacesedan/ytsentiment/internal/processing"
	"github.com/spacesedan/ytsentiment/internal/sentiment"
	"github.com/spacesedan/ytsentiment/internal/utils"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(logging.ParseLevel(os.Getenv("LOG_LEVEL")))

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := utils.NewLazy(func(ctx context.Context) (processing.VideoSource, error) {
		client, err := clients.NewYouTubeClient(ctx, cfg.YouTubeAPIKey, cfg.YouTubePageRate)
		if err != nil {
			return nil, err
		}
		return client, nil
	})

	classifier := utils.NewLazy(func(ctx context.Context) (sentiment.Classifier, error) {
		return sentiment.NewClassifier(ctx, sentiment.Config{
			Backend:   cfg.SentimentBackend,
			ModelName: cfg.SentimentModel,
			ModelDir:  cfg.SentimentModelDir,
			Endpoint:  cfg.SentimentEndpoint,
			Timeout:   cfg.SentimentTimeout,
		})
	})

	var (
		store  processing.RemoteStore
		valkey *clients.ValkeyClient
	)
	valkeyHealthy := &atomic.Bool{}
	if cfg.ValkeyAddr != "" {
		valkey, err = clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:  cfg.ValkeyAddr,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, using in-memory cache only",
				slog.String("error", err.Error()))
		} else {
			store = valkey
			valkeyHealthy.Store(true)
			defer valkey.Close()
		}
	}

	cache := processing.NewTieredCache(cfg.CacheSize, cfg.CacheTTL, store)
	pipeline := processing.NewPipeline(source, classifier, cache)

	server, err := dashboard.NewServer(pipeline)
	if err != nil {
		slog.Error("[Main] Failed to build dashboard", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if valkey != nil && store != nil {
		server.AddHealthCheck("valkey", valkeyHealthy)
		go monitoring.MonitorHealth(ctx, "valkey", valkey.Ping, valkeyHealthy)
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           dashboard.WithLogging(server.Routes()),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("[Main] Dashboard listening",
			slog.String("addr", cfg.ListenAddr),
			slog.String("env", env),
			slog.String("sentiment_backend", cfg.SentimentBackend))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("[Main] Shutting down", slog.String("signal", sig.String()))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}

	if c, ok := classifier.Peek(); ok {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("[Main] Failed to release sentiment model", slog.String("error", err.Error()))
			}
		}
	}
}
