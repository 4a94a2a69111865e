// Package reports turns an ordered sequence of frame records into the six
// derived report tables. Every generator is a pure batch transform: it
// tolerates zero-value fields, never panics, and reports "no data" on an
// empty input instead of producing an artifact.
package reports

import (
	"strconv"
	"time"

	"github.com/bdougie/streampulse/internal/models"
)

// Table is one tabular report artifact.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Build runs every generator over the record sequence, in capture order, and
// returns the tables that produced data. An empty sequence yields nothing.
func Build(records []models.FrameRecord, duration time.Duration) []Table {
	var tables []Table
	generators := []func([]models.FrameRecord) (Table, bool){
		func(r []models.FrameRecord) (Table, bool) { return ExecutiveSummary(r, duration) },
		PerformanceTimeSeries,
		CategoryTimeSeries,
		CategorizedComments,
		Insights,
		Demographics,
	}
	for _, generate := range generators {
		if table, ok := generate(records); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// PerformanceTimeSeries is a row-preserving projection of the per-frame
// engagement metrics, one row per record in capture order.
func PerformanceTimeSeries(records []models.FrameRecord) (Table, bool) {
	if len(records) == 0 {
		return Table{}, false
	}

	table := Table{
		Name:    "performance_timeseries",
		Columns: []string{"timestamp", "viewer_count", "likes_count", "sentiment_score", "engagement_level"},
	}
	for _, rec := range records {
		table.Rows = append(table.Rows, []string{
			rec.Timestamp,
			strconv.Itoa(rec.ViewerCount),
			strconv.Itoa(rec.LikesCount),
			formatScore(rec.SentimentScore),
			rec.EngagementLevel,
		})
	}
	return table, true
}

// CategoryTimeSeries reports, per record, how many comments fell into each
// themed category. Timestamps are shortened to a time of day when they parse.
func CategoryTimeSeries(records []models.FrameRecord) (Table, bool) {
	if len(records) == 0 {
		return Table{}, false
	}

	table := Table{
		Name:    "category_timeseries",
		Columns: []string{"time", "shade_matching", "product_confusion", "promotions_offers"},
	}
	for _, rec := range records {
		table.Rows = append(table.Rows, []string{
			timeOfDay(rec.Timestamp),
			strconv.Itoa(len(rec.ShadeMatchingComments)),
			strconv.Itoa(len(rec.ProductConfusionComments)),
			strconv.Itoa(len(rec.PromotionsOffersComments)),
		})
	}
	return table, true
}

// timeOfDay extracts a human-readable clock time from an RFC 3339 timestamp,
// falling back to the raw string when it does not parse.
func timeOfDay(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
