package logic

import "github.com/readhub/leaderboard-api/internal/models"

// AnonymousName is shown for users without a username.
const AnonymousName = "Anonymous"

// ToEntry projects a row-source row into a leaderboard entry. rank is the
// absolute 1-based position supplied by the caller; the engine trusts the
// row source's order and never recomputes rank from the value. Equal values
// keep their source order and receive consecutive ranks.
func ToEntry(row models.LeaderboardRow, rank int, requestingUserID string) models.LeaderboardEntry {
	username := AnonymousName
	if row.Username != nil && *row.Username != "" {
		username = *row.Username
	}
	return models.LeaderboardEntry{
		Rank: rank,
		User: models.LeaderboardUser{
			ID:          row.UserID,
			Username:    username,
			DisplayName: row.DisplayName,
			AvatarURL:   row.AvatarURL,
		},
		Value:         row.Value,
		IsCurrentUser: row.UserID == requestingUserID,
	}
}
