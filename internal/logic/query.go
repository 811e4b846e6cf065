package logic

import (
	"math"
	"strconv"

	"github.com/readhub/leaderboard-api/internal/models"
)

const (
	// DefaultLimit is the page size used when the client sends none.
	DefaultLimit = 50
	// MaxLimit caps the page size a client can request.
	MaxLimit = 100
)

// ResolveQuery normalizes raw query parameters into a fully populated
// LeaderboardQuery. It never fails: anything malformed, missing, or out of
// range falls back to a documented default. Multi-valued parameters use
// only their first occurrence.
func ResolveQuery(raw map[string][]string) models.LeaderboardQuery {
	q := models.LeaderboardQuery{
		Timeframe: models.TimeframeWeekly,
		Metric:    models.MetricXP,
		Page:      1,
		Limit:     DefaultLimit,
	}

	if tf := models.Timeframe(firstValue(raw, "timeframe")); tf.Valid() {
		q.Timeframe = tf
	}
	if m := models.Metric(firstValue(raw, "metric")); m.Valid() {
		q.Metric = m
	}

	// Only the literal "true" opts into the friends scope.
	q.FriendsOnly = firstValue(raw, "friendsOnly") == "true"

	if page, ok := parseIntParam(firstValue(raw, "page")); ok && page >= 1 {
		q.Page = page
	}
	if limit, ok := parseIntParam(firstValue(raw, "limit")); ok && limit >= 1 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		q.Limit = limit
	}

	return q
}

func firstValue(raw map[string][]string, key string) string {
	values := raw[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseIntParam parses an integer parameter, truncating fractional input
// toward zero ("2.9" -> 2). Returns false when the value is not numeric.
func parseIntParam(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
