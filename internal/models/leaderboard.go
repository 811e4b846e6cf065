package models

// Timeframe bounds which reading activity counts toward a metric.
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAllTime Timeframe = "all_time"
)

// Valid reports whether the timeframe is one of the supported windows.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeWeekly, TimeframeMonthly, TimeframeAllTime:
		return true
	default:
		return false
	}
}

// Metric is the quantity being ranked.
type Metric string

const (
	MetricXP          Metric = "xp"
	MetricBooks       Metric = "books"
	MetricStreak      Metric = "streak"
	MetricReadingTime Metric = "reading_time"
)

// Valid reports whether the metric is one of the supported rankings.
func (m Metric) Valid() bool {
	switch m {
	case MetricXP, MetricBooks, MetricStreak, MetricReadingTime:
		return true
	default:
		return false
	}
}

// LeaderboardQuery is a fully resolved leaderboard request. Every field is
// always populated; malformed input is coerced to defaults, never rejected.
type LeaderboardQuery struct {
	Timeframe   Timeframe `json:"timeframe"`
	Metric      Metric    `json:"metric"`
	FriendsOnly bool      `json:"friends_only"`
	Page        int       `json:"page"`
	Limit       int       `json:"limit"`
}

// LeaderboardRow is one ranked participant as returned by the row source,
// in positional order. Profile fields are nullable straight from storage.
type LeaderboardRow struct {
	UserID      string
	Username    *string
	DisplayName *string
	AvatarURL   *string
	Value       float64
}

// LeaderboardUser is the user payload embedded in a leaderboard entry.
type LeaderboardUser struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// LeaderboardEntry is a single row of the served leaderboard. Rank is
// absolute within the full ordered set, not page-relative.
type LeaderboardEntry struct {
	Rank          int             `json:"rank"`
	User          LeaderboardUser `json:"user"`
	Value         float64         `json:"value"`
	IsCurrentUser bool            `json:"is_current_user"`
}

// Pagination describes the page window of a leaderboard response.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// LeaderboardResponse is the full payload served for one leaderboard page.
type LeaderboardResponse struct {
	Entries         []LeaderboardEntry `json:"entries"`
	CurrentUserRank *int               `json:"current_user_rank"`
	Timeframe       Timeframe          `json:"timeframe"`
	Metric          Metric             `json:"metric"`
	Pagination      Pagination         `json:"pagination"`
}
