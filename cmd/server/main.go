package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/Matthew-Troost/double-entry-ledger/internal/adapter/http"
	"github.com/Matthew-Troost/double-entry-ledger/internal/adapter/http/handler"
	memoryRepo "github.com/Matthew-Troost/double-entry-ledger/internal/adapter/repository/memory"
	postgresRepo "github.com/Matthew-Troost/double-entry-ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/Matthew-Troost/double-entry-ledger/internal/adapter/repository/redis"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/config"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/logger"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/metrics"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/postgres"
	"github.com/Matthew-Troost/double-entry-ledger/internal/infrastructure/redis"
	"github.com/Matthew-Troost/double-entry-ledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ledger"})
	log.Logger = appLogger

	ctx := context.Background()

	var idGen usecase.IDGenerator
	switch cfg.IDScheme {
	case config.IDSchemeULID:
		idGen = memoryRepo.NewULIDGenerator()
	default:
		idGen = memoryRepo.NewUUIDGenerator()
	}

	// Wire the store driver
	var (
		accountRepo     usecase.AccountRepository
		transactionRepo usecase.TransactionRepository
		entryRepo       usecase.EntryRepository
		txManager       usecase.TransactionManager
		healthChecks    = map[string]handler.HealthCheck{}
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		if cfg.MigrateOnStart {
			if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		accountRepo = postgresRepo.NewAccountRepository(pool)
		transactionRepo = postgresRepo.NewTransactionRepository(pool)
		entryRepo = postgresRepo.NewEntryRepository(pool)
		txManager = postgresRepo.NewTxManager(pool)
		healthChecks["postgres"] = pool.Ping

	default:
		store := memoryRepo.NewStore()
		accountRepo = memoryRepo.NewAccountRepository(store)
		transactionRepo = memoryRepo.NewTransactionRepository(store)
		entryRepo = memoryRepo.NewEntryRepository(store)
		txManager = store
		log.Info().Msg("using in-memory store")
	}

	// Redis is optional; without it idempotency caching is disabled.
	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize use cases
	entryUC := usecase.NewEntryUseCase(entryRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, entryUC, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountUC, entryUC, transactionRepo, idGen, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		EntryHandler:       handler.NewEntryHandler(entryUC),
		HealthHandler:      handler.NewHealthHandler(healthChecks),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
