package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kudos-backend/internal/application/achievements"
	"kudos-backend/internal/application/balances"
	"kudos-backend/internal/application/distribution"
	"kudos-backend/internal/application/ledger"
	"kudos-backend/internal/application/transfer"
	"kudos-backend/internal/config"
	"kudos-backend/internal/infrastructure/database"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ledgerd runs the background side of the token ledger: scheduled
// auto-distribution and achievement sweeps. The REST layer in front of the
// ledger calls the application services directly and is deployed separately.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle unavailable")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database ping failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("Postgres connected")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		log.Info().Msg("Redis connected")
	}

	store := &ledger.Store{DB: db, Timeout: cfg.StoreTimeout}
	balanceSvc := &balances.Service{Store: store, Redis: rdb, TTL: cfg.BalanceCacheTTL}
	transferSvc := &transfer.Service{Store: store, Cache: balanceSvc}
	distSvc := &distribution.Service{DB: db, Transfers: transferSvc}
	achSvc := &achievements.Service{DB: db}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	distTicker := time.NewTicker(cfg.DistributionInterval)
	defer distTicker.Stop()
	sweepTicker := time.NewTicker(cfg.SweepInterval)
	defer sweepTicker.Stop()

	log.Info().
		Dur("distribution_interval", cfg.DistributionInterval).
		Dur("sweep_interval", cfg.SweepInterval).
		Msg("ledgerd running")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case <-distTicker.C:
			if _, err := distSvc.Distribute(ctx); err != nil {
				log.Error().Err(err).Msg("auto-distribution sweep finished with errors")
			}
		case <-sweepTicker.C:
			if _, err := achSvc.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("achievement sweep finished with errors")
			}
		}
	}
}
