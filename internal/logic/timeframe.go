package logic

import (
	"time"

	"github.com/readhub/leaderboard-api/internal/models"
)

// StartDateFor resolves a timeframe to its window start, or nil for
// all-time. The start is truncated to midnight so every request within the
// same calendar day lands in the same implicit time bucket and shares a
// cache entry instead of missing on sub-second clock drift.
func StartDateFor(tf models.Timeframe, now time.Time) *time.Time {
	var days int
	switch tf {
	case models.TimeframeAllTime:
		return nil
	case models.TimeframeMonthly:
		days = 30
	default:
		days = 7
	}

	t := now.AddDate(0, 0, -days)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &start
}

// CacheTTLs holds the per-timeframe cache lifetimes. Shorter windows
// reshuffle with every day of new activity and tolerate only short
// lifetimes; all-time aggregates move slowly and can be cached longest.
type CacheTTLs struct {
	Weekly  time.Duration
	Monthly time.Duration
	AllTime time.Duration
}

// DefaultCacheTTLs returns the production cache lifetimes.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Weekly:  5 * time.Minute,
		Monthly: 15 * time.Minute,
		AllTime: time.Hour,
	}
}

// For selects the TTL for a timeframe.
func (c CacheTTLs) For(tf models.Timeframe) time.Duration {
	switch tf {
	case models.TimeframeMonthly:
		return c.Monthly
	case models.TimeframeAllTime:
		return c.AllTime
	default:
		return c.Weekly
	}
}
