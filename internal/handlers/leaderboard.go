package handlers

import (
	"net/http"
)

// GetLeaderboard serves one page of a ranked leaderboard
// @Summary Get Leaderboard
// @Description Ranked users by xp, books, streak, or reading_time over a timeframe
// @Tags Leaderboards
// @Produce json
// @Param metric query string false "Metric (xp, books, streak, reading_time)" default(xp)
// @Param timeframe query string false "Timeframe (weekly, monthly, all_time)" default(weekly)
// @Param friendsOnly query bool false "Restrict to the requesting user's friends" default(false)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Limit" default(50)
// @Success 200 {object} models.LeaderboardResponse "Leaderboard page"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDFromContext(ctx)

	// Raw query params go to the service as-is; it normalizes malformed
	// input to defaults rather than rejecting it.
	resp, err := h.leaderboard.GetLeaderboard(ctx, r.URL.Query(), userID)
	if err != nil {
		h.logger.Errorw("Failed to get leaderboard", "user_id", userID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}
