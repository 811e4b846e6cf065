package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/readhub/leaderboard-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// CacheInvalidator removes cached leaderboard pages by key prefix.
type CacheInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)
}

type Config struct {
	Postgres *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.Logger
	// Services
	Leaderboard logic.LeaderboardService
	Cache       CacheInvalidator
}

type Handler struct {
	pg          *pgxpool.Pool
	redis       *redis.Client
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	leaderboard logic.LeaderboardService
	cache       CacheInvalidator
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:          cfg.Postgres,
		redis:       cfg.Redis,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		leaderboard: cfg.Leaderboard,
		cache:       cfg.Cache,
	}
}
