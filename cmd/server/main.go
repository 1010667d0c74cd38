package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/wordlebot-go/internal/api"
	"github.com/mcoot/wordlebot-go/internal/factory"
	"github.com/mcoot/wordlebot-go/internal/storage/migrate"
	redisstorage "github.com/mcoot/wordlebot-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if v := os.Getenv("IDLE_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid IDLE_TIMEOUT", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.IdleTimeout = timeout
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the word list: prefer a fresh file, fall back to what storage holds
	wordsFile := os.Getenv("WORDS_FILE")
	if wordsFile == "" {
		wordsFile = "data/words.txt"
	}
	if err := app.WordsService.LoadFromFile(ctx, wordsFile); err != nil {
		logger.Warn("could not load word list from file, trying storage",
			slog.String("path", wordsFile), slog.String("error", err.Error()))
		if err := app.WordsService.LoadFromStorage(ctx); err != nil {
			logger.Error("no word list available", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("word list loaded", slog.Int("words", app.WordsService.WordCount()))

	// One-shot import of a legacy history dump
	if legacyFile := os.Getenv("LEGACY_DATA_FILE"); legacyFile != "" {
		f, err := os.Open(legacyFile)
		if err != nil {
			logger.Error("could not open legacy data file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		count, err := migrate.Import(ctx, app.Storage, f, logger)
		_ = f.Close()
		if err != nil {
			logger.Error("legacy import failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("legacy import complete", slog.Int("records", count))
	}

	// Idle-session sweeper
	if app.Sweeper != nil {
		go app.Sweeper.Run(ctx)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			logger.Error("invalid PORT", slog.String("error", err.Error()))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
