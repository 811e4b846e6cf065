package logic

import "github.com/readhub/leaderboard-api/internal/models"

// Paginate computes the pagination descriptor for a page window. An empty
// result set has zero pages and neither navigation flag, regardless of the
// requested page.
func Paginate(page, limit, total int) models.Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Pagination{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: total > 0 && page > 1,
	}
}
