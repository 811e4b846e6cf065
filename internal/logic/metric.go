package logic

import "github.com/readhub/leaderboard-api/internal/models"

// metricColumns maps a metric to the sortable column the row source
// understands. Only values from this table ever reach the store, which
// keeps the ORDER BY surface a closed whitelist.
var metricColumns = map[models.Metric]string{
	models.MetricXP:          "totalXP",
	models.MetricBooks:       "booksCompleted",
	models.MetricStreak:      "currentStreak",
	models.MetricReadingTime: "totalReadingTime",
}

// ColumnFor resolves the row-source column for a metric. Unknown metrics
// cannot occur after ResolveQuery; the fallback exists so an unvalidated
// caller still gets a safe column.
func ColumnFor(m models.Metric) string {
	if col, ok := metricColumns[m]; ok {
		return col
	}
	return metricColumns[models.MetricXP]
}
