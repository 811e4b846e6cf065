package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/readhub/leaderboard-api/internal/models"
)

// PgPool is the slice of pgxpool.Pool the ranking store needs.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rankExprs maps a row-source column token to the SQL aggregate that
// produces it. Tokens not in this whitelist never reach the query text.
var rankExprs = map[string]string{
	"totalXP":          "COALESCE(SUM(s.xp_earned), 0)",
	"booksCompleted":   "COALESCE(SUM(s.books_completed), 0)",
	"currentStreak":    "COALESCE(MAX(u.current_streak), 0)",
	"totalReadingTime": "COALESCE(SUM(s.reading_seconds), 0)",
}

// RankingStore reads ordered leaderboard rows from the per-day reading
// aggregates in Postgres.
type RankingStore struct {
	pg PgPool
}

func NewRankingStore(pg PgPool) *RankingStore {
	return &RankingStore{pg: pg}
}

// scoreQuery builds the ranked CTE shared by the page and rank lookups.
// Ranking order is value descending with user_id as the stable tiebreak,
// so equal values always come back in the same order.
func scoreQuery(column string, startDate *time.Time, friendsOnly bool, userID string, args []any) (string, []any) {
	expr, ok := rankExprs[column]
	if !ok {
		expr = rankExprs["totalXP"]
	}

	var b strings.Builder
	b.WriteString(`
		WITH scores AS (
			SELECT s.user_id, ` + expr + ` AS value
			FROM user_reading_daily s
			JOIN users u ON u.id = s.user_id
			WHERE u.deleted_at IS NULL`)

	if startDate != nil {
		args = append(args, *startDate)
		fmt.Fprintf(&b, " AND s.day >= $%d", len(args))
	}
	if friendsOnly {
		args = append(args, userID)
		n := len(args)
		fmt.Fprintf(&b, ` AND (s.user_id = $%d OR s.user_id IN (
				SELECT f.friend_id FROM friendships f
				WHERE f.user_id = $%d AND f.status = 'accepted'
				UNION
				SELECT f.user_id FROM friendships f
				WHERE f.friend_id = $%d AND f.status = 'accepted'
			))`, n, n, n)
	}

	b.WriteString(`
			GROUP BY s.user_id
		),
		ranked AS (
			SELECT sc.user_id, sc.value,
			       ROW_NUMBER() OVER (ORDER BY sc.value DESC, sc.user_id) AS rank
			FROM scores sc
		)`)

	return b.String(), args
}

// QueryRanked returns one page of ordered rows and the total participant
// count under the same scope. Page and count queries run concurrently.
func (r *RankingStore) QueryRanked(ctx context.Context, column string, startDate *time.Time, friendsOnly bool, userID string, offset, limit int) ([]models.LeaderboardRow, int, error) {
	var (
		page  []models.LeaderboardRow
		total int
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cte, args := scoreQuery(column, startDate, friendsOnly, userID, nil)
		args = append(args, limit)
		limitPos := len(args)
		args = append(args, offset)
		query := cte + fmt.Sprintf(`
			SELECT r.user_id, u.username, u.display_name, u.avatar_url, r.value
			FROM ranked r
			JOIN users u ON u.id = r.user_id
			ORDER BY r.rank
			LIMIT $%d OFFSET $%d`, limitPos, limitPos+1)

		rows, err := r.pg.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query leaderboard page: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var row models.LeaderboardRow
			if err := rows.Scan(&row.UserID, &row.Username, &row.DisplayName, &row.AvatarURL, &row.Value); err != nil {
				return fmt.Errorf("scan leaderboard row: %w", err)
			}
			page = append(page, row)
		}
		return rows.Err()
	})

	g.Go(func() error {
		cte, args := scoreQuery(column, startDate, friendsOnly, userID, nil)
		query := cte + `
			SELECT COUNT(*) FROM ranked`
		if err := r.pg.QueryRow(ctx, query, args...).Scan(&total); err != nil {
			return fmt.Errorf("count leaderboard rows: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

// UserRank returns the user's absolute rank under the given scope, or nil
// when the user holds no rank there.
func (r *RankingStore) UserRank(ctx context.Context, column string, startDate *time.Time, friendsOnly bool, userID string) (*int, error) {
	cte, args := scoreQuery(column, startDate, friendsOnly, userID, nil)
	args = append(args, userID)
	query := cte + fmt.Sprintf(`
		SELECT r.rank FROM ranked r WHERE r.user_id = $%d`, len(args))

	var rank int
	if err := r.pg.QueryRow(ctx, query, args...).Scan(&rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user rank: %w", err)
	}
	return &rank, nil
}
