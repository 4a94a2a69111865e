package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bdougie/streampulse/internal/models"
)

// ExecutiveSummary condenses the whole run into a metric/value table: record
// count, sentiment average and bucket, comment volume, viewer and like
// extremes, and first-to-last growth percentages.
func ExecutiveSummary(records []models.FrameRecord, duration time.Duration) (Table, bool) {
	if len(records) == 0 {
		return Table{}, false
	}

	var scoreSum float64
	var totalComments int
	minViewers := records[0].ViewerCount
	maxViewers := records[0].ViewerCount
	maxLikes := records[0].LikesCount

	for _, rec := range records {
		scoreSum += rec.SentimentScore
		totalComments += len(rec.RawComments)
		if rec.ViewerCount < minViewers {
			minViewers = rec.ViewerCount
		}
		if rec.ViewerCount > maxViewers {
			maxViewers = rec.ViewerCount
		}
		if rec.LikesCount > maxLikes {
			maxLikes = rec.LikesCount
		}
	}

	avgScore := scoreSum / float64(len(records))
	first, last := records[0], records[len(records)-1]

	table := Table{
		Name:    "executive_summary",
		Columns: []string{"metric", "value"},
		Rows: [][]string{
			{"Analysis Duration", duration.String()},
			{"Frames Analyzed", strconv.Itoa(len(records))},
			{"Average Sentiment Score", fmt.Sprintf("%.2f", avgScore)},
			{"Overall Sentiment", sentimentBucket(avgScore)},
			{"Total Comments", strconv.Itoa(totalComments)},
			{"Min Viewers", strconv.Itoa(minViewers)},
			{"Max Viewers", strconv.Itoa(maxViewers)},
			{"Max Likes", strconv.Itoa(maxLikes)},
			{"Viewer Growth (%)", fmt.Sprintf("%.1f", growthPct(first.ViewerCount, last.ViewerCount))},
			{"Likes Growth (%)", fmt.Sprintf("%.1f", growthPct(first.LikesCount, last.LikesCount))},
		},
	}
	return table, true
}

// sentimentBucket maps a mean score to a label. The ±0.3 boundary is
// exclusive: exactly ±0.3 is still neutral.
func sentimentBucket(score float64) string {
	switch {
	case score < -0.3:
		return "negative"
	case score > 0.3:
		return "positive"
	default:
		return "neutral"
	}
}

// growthPct is the percentage change from the first to the last sample,
// guarded to zero when there is no starting value to grow from.
func growthPct(first, last int) float64 {
	if first <= 0 {
		return 0
	}
	return float64(last-first) / float64(first) * 100
}
