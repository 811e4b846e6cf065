package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/readhub/leaderboard-api/internal/models"
)

type leaderboardService struct {
	rows   RowSource
	cache  CacheStore
	ttls   CacheTTLs
	logger *zap.SugaredLogger
}

// NewLeaderboardService wires the engine around a row source and a cache
// store.
func NewLeaderboardService(rows RowSource, cache CacheStore, ttls CacheTTLs, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{
		rows:   rows,
		cache:  cache,
		ttls:   ttls,
		logger: logger.Sugar(),
	}
}

// GetLeaderboard resolves the raw parameters, serves the page from cache
// when possible, and otherwise computes it from the row source. Cached
// responses are stored as their JSON encoding, so repeated identical
// requests within a TTL return byte-identical payloads.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, rawParams map[string][]string, requestingUserID string) (*models.LeaderboardResponse, error) {
	query := ResolveQuery(rawParams)
	column := ColumnFor(query.Metric)
	startDate := StartDateFor(query.Timeframe, time.Now())
	key := BuildCacheKey(query, requestingUserID)

	payload, err := s.cache.GetOrSet(ctx, key, s.ttls.For(query.Timeframe), func(ctx context.Context) ([]byte, error) {
		resp, err := s.build(ctx, query, column, startDate, requestingUserID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp)
	})
	if err != nil {
		return nil, err
	}

	var resp models.LeaderboardResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode cached leaderboard %q: %w", key, err)
	}
	return &resp, nil
}

func (s *leaderboardService) build(ctx context.Context, query models.LeaderboardQuery, column string, startDate *time.Time, requestingUserID string) (*models.LeaderboardResponse, error) {
	offset := (query.Page - 1) * query.Limit

	rows, total, err := s.rows.QueryRanked(ctx, column, startDate, query.FriendsOnly, requestingUserID, offset, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("query ranked rows: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, ToEntry(row, offset+i+1, requestingUserID))
	}

	// The user's own rank is looked up under the same scope as the page
	// being served. A failure here degrades to "unranked" rather than
	// failing the whole request.
	var currentUserRank *int
	if requestingUserID != "" {
		rank, err := s.rows.UserRank(ctx, column, startDate, query.FriendsOnly, requestingUserID)
		if err != nil {
			s.logger.Warnw("Failed to resolve requesting user's rank",
				"user_id", requestingUserID, "metric", query.Metric, "error", err)
		} else {
			currentUserRank = rank
		}
	}

	return &models.LeaderboardResponse{
		Entries:         entries,
		CurrentUserRank: currentUserRank,
		Timeframe:       query.Timeframe,
		Metric:          query.Metric,
		Pagination:      Paginate(query.Page, query.Limit, total),
	}, nil
}
