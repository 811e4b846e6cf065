package logic

import (
	"context"
	"time"

	"github.com/readhub/leaderboard-api/internal/models"
)

// RowSource provides ordered leaderboard rows for a metric column. The
// engine trusts the positional order it returns and never re-sorts.
type RowSource interface {
	// QueryRanked returns one page of ordered rows plus the total number
	// of ranked participants under the same scope. startDate of nil means
	// no lower bound (all-time).
	QueryRanked(ctx context.Context, column string, startDate *time.Time, friendsOnly bool, userID string, offset, limit int) ([]models.LeaderboardRow, int, error)

	// UserRank resolves the requesting user's absolute 1-based rank under
	// the given scope, or nil if the user holds no rank there.
	UserRank(ctx context.Context, column string, startDate *time.Time, friendsOnly bool, userID string) (*int, error)
}

// CacheStore is the shared cache the engine keys by the strings it builds.
// GetOrSet must collapse concurrent computations for the same key and may
// only return an error when compute itself fails; a cache outage is handled
// inside the store by computing fresh (fail-open).
type CacheStore interface {
	GetOrSet(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error)
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)
}

// LeaderboardService turns raw request parameters into a served leaderboard
// page.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, rawParams map[string][]string, requestingUserID string) (*models.LeaderboardResponse, error)
}
