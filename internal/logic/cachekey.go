package logic

import (
	"fmt"

	"github.com/readhub/leaderboard-api/internal/models"
)

// CacheKeyPrefix namespaces every leaderboard cache entry; invalidation
// workflows sweep by this prefix.
const CacheKeyPrefix = "leaderboard"

// BuildCacheKey derives the cache key for a resolved query. Friends-scoped
// views embed the requesting user's ID: those rankings differ per user, and
// sharing an entry across users would leak one user's friend rankings to
// another.
func BuildCacheKey(q models.LeaderboardQuery, requestingUserID string) string {
	scope := "global"
	if q.FriendsOnly {
		scope = "friends:" + requestingUserID
	}
	return fmt.Sprintf("%s:%s:%s:%s:page:%d:limit:%d",
		CacheKeyPrefix, q.Metric, q.Timeframe, scope, q.Page, q.Limit)
}
