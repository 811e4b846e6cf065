package handlers

import (
	"context"

	"github.com/readhub/leaderboard-api/internal/models"
)

// Mocks

type MockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context, rawParams map[string][]string, requestingUserID string) (*models.LeaderboardResponse, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, rawParams map[string][]string, requestingUserID string) (*models.LeaderboardResponse, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, rawParams, requestingUserID)
	}
	return &models.LeaderboardResponse{
		Entries:   []models.LeaderboardEntry{},
		Timeframe: models.TimeframeWeekly,
		Metric:    models.MetricXP,
	}, nil
}

type MockCacheInvalidator struct {
	InvalidatePrefixFunc func(ctx context.Context, prefix string) (int, error)
}

func (m *MockCacheInvalidator) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	if m.InvalidatePrefixFunc != nil {
		return m.InvalidatePrefixFunc(ctx, prefix)
	}
	return 0, nil
}
