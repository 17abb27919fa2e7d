package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hailem/recallbox/internal/ai"
	"github.com/hailem/recallbox/internal/api"
	"github.com/hailem/recallbox/internal/auth"
	"github.com/hailem/recallbox/internal/config"
	"github.com/hailem/recallbox/internal/db"
	"github.com/hailem/recallbox/internal/jobs"
	"github.com/hailem/recallbox/internal/logger"
	"github.com/hailem/recallbox/internal/repository/sqlite"
	"github.com/hailem/recallbox/internal/services"
	"github.com/hailem/recallbox/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("RecallBox Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl=%s", cfg.TokenTTL)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("embedding_model=%s", cfg.EmbeddingModel)
	log.Debug("chat_model=%s", cfg.ChatModel)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	folderRepo := sqlite.NewFolderRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	convRepo := sqlite.NewConversationRepository(database.DB)

	// Token revocation backend. Redis survives restarts; the in-memory
	// fallback keeps single-node deployments dependency-free.
	var blocklist auth.Blocklist
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to connect to redis at %s: %v", cfg.RedisAddr, err)
			os.Exit(1)
		}
		log.Info("using redis token blocklist at %s", cfg.RedisAddr)
		blocklist = auth.NewRedisBlocklist(client)
	} else {
		log.Warn("REDIS_ADDR not set, revoked tokens will not survive restarts")
		blocklist = auth.NewMemoryBlocklist()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Model backend for answer scoring and study chat
	provider := ai.NewProvider(ai.Config{
		APIKey:         cfg.AIAPIKey,
		BaseURL:        cfg.AIBaseURL,
		EmbeddingModel: cfg.EmbeddingModel,
		ChatModel:      cfg.ChatModel,
		Timeout:        cfg.AITimeout,
	})
	scorer := ai.NewSimilarityScorer(provider)

	// Background stats refresh
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	jobQueue := jobs.NewWorkerQueue(statsPool, userRepo, cardRepo, reviewRepo, statsRepo)

	srv := &api.Server{
		Auth:      services.NewAuthService(userRepo, tokens, blocklist),
		Folders:   services.NewFolderService(folderRepo, deckRepo),
		Decks:     services.NewDeckService(folderRepo, deckRepo, cardRepo),
		Cards:     services.NewCardService(deckRepo, cardRepo),
		Reviews:   services.NewReviewService(cardRepo, reviewRepo, scorer, jobQueue),
		Stats:     services.NewStatsService(folderRepo, deckRepo, cardRepo, reviewRepo, statsRepo),
		Chat:      services.NewChatService(statsRepo, convRepo, provider),
		Tokens:    tokens,
		Blocklist: blocklist,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	statsPool.Stop()

	log.Info("===========================================")
	log.Info("RecallBox Server Stopped")
	log.Info("===========================================")
}
