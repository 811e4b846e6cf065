package store

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/readhub/leaderboard-api/internal/models"
)

// Mocks

type capturedQuery struct {
	SQL  string
	Args []any
}

type mockPgPool struct {
	mu       sync.Mutex
	queries  []capturedQuery
	rows     []models.LeaderboardRow
	total    int
	rank     int
	scanErr  error
	queryErr error
}

func (m *mockPgPool) capture(sql string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, capturedQuery{SQL: sql, Args: args})
}

func (m *mockPgPool) captured() []capturedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]capturedQuery(nil), m.queries...)
}

func (m *mockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.capture(sql, args)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return &mockRows{rows: m.rows}, nil
}

func (m *mockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.capture(sql, args)
	if strings.Contains(sql, "COUNT(*)") {
		return &mockRow{scan: func(dest ...any) error {
			*dest[0].(*int) = m.total
			return nil
		}}
	}
	return &mockRow{scan: func(dest ...any) error {
		if m.scanErr != nil {
			return m.scanErr
		}
		*dest[0].(*int) = m.rank
		return nil
	}}
}

type mockRows struct {
	pgx.Rows
	rows []models.LeaderboardRow
	idx  int
}

func (m *mockRows) Next() bool {
	m.idx++
	return m.idx <= len(m.rows)
}

func (m *mockRows) Scan(dest ...any) error {
	r := m.rows[m.idx-1]
	*dest[0].(*string) = r.UserID
	*dest[1].(**string) = r.Username
	*dest[2].(**string) = r.DisplayName
	*dest[3].(**string) = r.AvatarURL
	*dest[4].(*float64) = r.Value
	return nil
}

func (m *mockRows) Close() {}

func (m *mockRows) Err() error { return nil }

type mockRow struct {
	scan func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error { return m.scan(dest...) }

func strptr(s string) *string { return &s }

func TestQueryRankedSQLSafety(t *testing.T) {
	tests := []struct {
		name         string
		column       string
		expectedExpr string
	}{
		{
			name:         "Known Column XP",
			column:       "totalXP",
			expectedExpr: "SUM(s.xp_earned)",
		},
		{
			name:         "Known Column Reading Time",
			column:       "totalReadingTime",
			expectedExpr: "SUM(s.reading_seconds)",
		},
		{
			name:         "Unknown Column Falls Back To XP",
			column:       "totalXP; DROP TABLE users",
			expectedExpr: "SUM(s.xp_earned)",
		},
		{
			name:         "Empty Column Falls Back To XP",
			column:       "",
			expectedExpr: "SUM(s.xp_earned)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &mockPgPool{}
			s := NewRankingStore(pool)

			if _, _, err := s.QueryRanked(context.Background(), tt.column, nil, false, "", 0, 50); err != nil {
				t.Fatalf("QueryRanked() error = %v", err)
			}

			for _, q := range pool.captured() {
				if !strings.Contains(q.SQL, tt.expectedExpr) {
					t.Errorf("query missing expected aggregate %q:\n%s", tt.expectedExpr, q.SQL)
				}
				if strings.Contains(q.SQL, "DROP TABLE") {
					t.Errorf("raw column text leaked into query:\n%s", q.SQL)
				}
			}
		})
	}
}

func TestQueryRankedScopeClauses(t *testing.T) {
	start := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	t.Run("All Time Has No Date Bound", func(t *testing.T) {
		pool := &mockPgPool{}
		s := NewRankingStore(pool)
		if _, _, err := s.QueryRanked(context.Background(), "totalXP", nil, false, "", 0, 50); err != nil {
			t.Fatalf("QueryRanked() error = %v", err)
		}
		for _, q := range pool.captured() {
			if strings.Contains(q.SQL, "s.day >=") {
				t.Errorf("all-time query must not bound by day:\n%s", q.SQL)
			}
			if strings.Contains(q.SQL, "friendships") {
				t.Errorf("global query must not join friendships:\n%s", q.SQL)
			}
		}
	})

	t.Run("Windowed Query Binds Start Date", func(t *testing.T) {
		pool := &mockPgPool{}
		s := NewRankingStore(pool)
		if _, _, err := s.QueryRanked(context.Background(), "totalXP", &start, false, "", 0, 50); err != nil {
			t.Fatalf("QueryRanked() error = %v", err)
		}
		for _, q := range pool.captured() {
			if !strings.Contains(q.SQL, "s.day >= $1") {
				t.Errorf("windowed query missing day bound:\n%s", q.SQL)
			}
			if len(q.Args) == 0 || q.Args[0] != start {
				t.Errorf("start date not bound as first arg: %v", q.Args)
			}
		}
	})

	t.Run("Friends Scope Joins Friendships", func(t *testing.T) {
		pool := &mockPgPool{}
		s := NewRankingStore(pool)
		if _, _, err := s.QueryRanked(context.Background(), "totalXP", &start, true, "u7", 0, 50); err != nil {
			t.Fatalf("QueryRanked() error = %v", err)
		}
		for _, q := range pool.captured() {
			if !strings.Contains(q.SQL, "friendships") {
				t.Errorf("friends query missing friendships filter:\n%s", q.SQL)
			}
		}
	})
}

func TestQueryRankedReturnsRowsAndTotal(t *testing.T) {
	pool := &mockPgPool{
		rows: []models.LeaderboardRow{
			{UserID: "u1", Username: strptr("first"), Value: 900},
			{UserID: "u2", Username: nil, AvatarURL: strptr("https://cdn.example.com/u2.png"), Value: 850},
		},
		total: 42,
	}
	s := NewRankingStore(pool)

	rows, total, err := s.QueryRanked(context.Background(), "totalXP", nil, false, "", 0, 50)
	if err != nil {
		t.Fatalf("QueryRanked() error = %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].UserID != "u1" || *rows[0].Username != "first" || rows[0].Value != 900 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Username != nil {
		t.Errorf("row 1 username = %v, want nil", rows[1].Username)
	}
}

func TestUserRank(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		pool := &mockPgPool{rank: 17}
		s := NewRankingStore(pool)

		rank, err := s.UserRank(context.Background(), "totalXP", nil, false, "u1")
		if err != nil {
			t.Fatalf("UserRank() error = %v", err)
		}
		if rank == nil || *rank != 17 {
			t.Errorf("rank = %v, want 17", rank)
		}
	})

	t.Run("Unranked User Yields Nil", func(t *testing.T) {
		pool := &mockPgPool{scanErr: pgx.ErrNoRows}
		s := NewRankingStore(pool)

		rank, err := s.UserRank(context.Background(), "totalXP", nil, false, "ghost")
		if err != nil {
			t.Fatalf("UserRank() error = %v", err)
		}
		if rank != nil {
			t.Errorf("rank = %v, want nil", rank)
		}
	})
}
