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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/readhub/leaderboard-api/internal/cache"
	"github.com/readhub/leaderboard-api/internal/config"
	"github.com/readhub/leaderboard-api/internal/handlers"
	"github.com/readhub/leaderboard-api/internal/logic"
	"github.com/readhub/leaderboard-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create Postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping Postgres", "error", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Cache misses fail open, so a Redis outage at boot is degraded
		// service rather than a fatal error.
		sugar.Warnw("Redis unreachable at startup, cache will fail open", "error", err)
	}

	rankings := store.NewRankingStore(pg)
	lbCache := cache.New(rdb, logger)
	leaderboard := logic.NewLeaderboardService(rankings, lbCache, logic.CacheTTLs{
		Weekly:  cfg.WeeklyCacheTTL,
		Monthly: cfg.MonthlyCacheTTL,
		AllTime: cfg.AllTimeCacheTTL,
	}, logger)

	h := handlers.New(handlers.Config{
		Postgres:    pg,
		Redis:       rdb,
		Logger:      logger,
		Leaderboard: leaderboard,
		Cache:       lbCache,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handlers.NewRouter(h, cfg.AllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	sugar.Infow("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}
