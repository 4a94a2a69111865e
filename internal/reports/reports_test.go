package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bdougie/streampulse/internal/models"
)

func record(viewers, likes int, score float64) models.FrameRecord {
	return models.FrameRecord{
		Timestamp:       "2025-06-01T10:00:00Z",
		ImageRef:        "frame.png",
		ViewerCount:     viewers,
		LikesCount:      likes,
		SentimentLabel:  "neutral",
		SentimentScore:  score,
		EngagementLevel: "medium",
		AgeGroup:        "unknown",
		Gender:          "unknown",
	}
}

func summaryValue(t *testing.T, table Table, metric string) string {
	t.Helper()
	for _, row := range table.Rows {
		if row[0] == metric {
			return row[1]
		}
	}
	t.Fatalf("metric %q not found", metric)
	return ""
}

func TestAllGeneratorsSkipEmptyInput(t *testing.T) {
	var none []models.FrameRecord

	_, ok := ExecutiveSummary(none, time.Minute)
	assert.False(t, ok)
	_, ok = PerformanceTimeSeries(none)
	assert.False(t, ok)
	_, ok = CategoryTimeSeries(none)
	assert.False(t, ok)
	_, ok = CategorizedComments(none)
	assert.False(t, ok)
	_, ok = Insights(none)
	assert.False(t, ok)
	_, ok = Demographics(none)
	assert.False(t, ok)

	assert.Empty(t, Build(none, time.Minute))
}

func TestExecutiveSummaryEndToEnd(t *testing.T) {
	records := []models.FrameRecord{
		record(100, 10, 0.1),
		record(150, 15, 0.2),
		record(120, 20, 0.3),
	}
	records[0].RawComments = []string{"a", "b"}
	records[2].RawComments = []string{"c"}

	table, ok := ExecutiveSummary(records, 10*time.Minute)
	assert.True(t, ok)

	assert.Equal(t, "10m0s", summaryValue(t, table, "Analysis Duration"))
	assert.Equal(t, "3", summaryValue(t, table, "Frames Analyzed"))
	assert.Equal(t, "0.20", summaryValue(t, table, "Average Sentiment Score"))
	assert.Equal(t, "neutral", summaryValue(t, table, "Overall Sentiment"))
	assert.Equal(t, "3", summaryValue(t, table, "Total Comments"))
	assert.Equal(t, "100", summaryValue(t, table, "Min Viewers"))
	assert.Equal(t, "150", summaryValue(t, table, "Max Viewers"))
	assert.Equal(t, "20", summaryValue(t, table, "Max Likes"))
	assert.Equal(t, "20.0", summaryValue(t, table, "Viewer Growth (%)"))
	assert.Equal(t, "100.0", summaryValue(t, table, "Likes Growth (%)"))
}

func TestSentimentBucketBoundaries(t *testing.T) {
	assert.Equal(t, "neutral", sentimentBucket(-0.3))
	assert.Equal(t, "neutral", sentimentBucket(0.3))
	assert.Equal(t, "negative", sentimentBucket(-0.31))
	assert.Equal(t, "positive", sentimentBucket(0.31))
	assert.Equal(t, "neutral", sentimentBucket(0))
}

func TestGrowthPct(t *testing.T) {
	assert.Equal(t, 0.0, growthPct(0, 100))
	assert.Equal(t, 50.0, growthPct(50, 75))
	assert.Equal(t, -50.0, growthPct(100, 50))
}

func TestPerformanceTimeSeriesPreservesOrder(t *testing.T) {
	records := []models.FrameRecord{record(100, 1, 0.5), record(90, 2, -0.25)}
	records[1].Timestamp = "2025-06-01T10:00:30Z"
	records[1].EngagementLevel = "low"

	table, ok := PerformanceTimeSeries(records)
	assert.True(t, ok)
	assert.Equal(t, []string{"timestamp", "viewer_count", "likes_count", "sentiment_score", "engagement_level"}, table.Columns)
	assert.Equal(t, [][]string{
		{"2025-06-01T10:00:00Z", "100", "1", "0.5", "medium"},
		{"2025-06-01T10:00:30Z", "90", "2", "-0.25", "low"},
	}, table.Rows)
}

func TestCategoryTimeSeriesCountsAndTimeFallback(t *testing.T) {
	rec := record(10, 1, 0)
	rec.ShadeMatchingComments = []string{"shade?", "what shade"}
	rec.PromotionsOffersComments = []string{"discount?"}

	bad := record(11, 2, 0)
	bad.Timestamp = "not-a-timestamp"

	table, ok := CategoryTimeSeries([]models.FrameRecord{rec, bad})
	assert.True(t, ok)
	assert.Equal(t, [][]string{
		{"10:00:00", "2", "0", "1"},
		{"not-a-timestamp", "0", "0", "0"},
	}, table.Rows)
}

func TestCategorizedCommentsPrecedence(t *testing.T) {
	rec := record(10, 1, 0.5)
	rec.RawComments = []string{"which shade?", "is this the serum?", "any coupon?", "ship to UK?", "hello"}
	// "which shade?" is in both themed lists; shade matching wins.
	rec.ShadeMatchingComments = []string{"which shade?"}
	rec.ProductConfusionComments = []string{"which shade?", "is this the serum?"}
	rec.PromotionsOffersComments = []string{"any coupon?"}
	rec.Top3Questions = []string{"ship to UK?"}

	table, ok := CategorizedComments([]models.FrameRecord{rec})
	assert.True(t, ok)

	categories := make(map[string]string)
	for _, row := range table.Rows {
		categories[row[3]] = row[5]
	}
	assert.Equal(t, map[string]string{
		"which shade?":      "Shade Matching",
		"is this the serum?": "Product Confusion",
		"any coupon?":       "Promotions/Offers",
		"ship to UK?":       "Top Question",
		"hello":             "General",
	}, categories)
}

func TestCategorizedCommentsOneRowPerComment(t *testing.T) {
	a := record(10, 1, 0)
	a.RawComments = []string{"x", "x", "y"}
	b := record(20, 2, 0)

	table, ok := CategorizedComments([]models.FrameRecord{a, b})
	assert.True(t, ok)
	assert.Len(t, table.Rows, 3)
}

func TestInsightsRankingAndExclusions(t *testing.T) {
	a := record(1, 1, 0)
	a.Recommendations = []string{"pin the offer", "Check screenshot manually", "unknown"}
	a.Strengths = []string{"good lighting"}
	a.Weaknesses = []string{" audio echo "}

	b := record(2, 2, 0)
	b.Recommendations = []string{"pin the offer", "CHECK SCREENSHOT MANUALLY"}
	b.Strengths = []string{"good lighting", "friendly host"}
	b.Weaknesses = []string{"audio echo", "UNKNOWN"}

	table, ok := Insights([]models.FrameRecord{a, b})
	assert.True(t, ok)
	assert.Equal(t, [][]string{
		{"Recommendation", "pin the offer", "2"},
		{"Strength", "good lighting", "2"},
		{"Strength", "friendly host", "1"},
		{"Weakness", "audio echo", "2"},
	}, table.Rows)
}

func TestDemographicsRankingAndExclusions(t *testing.T) {
	a := record(1, 1, 0)
	a.AgeGroup = "25-34"
	a.Gender = "Unknown"
	a.Interests = []string{"makeup", "skincare"}
	a.Locations = []string{"Austin"}

	b := record(2, 2, 0)
	b.AgeGroup = "25-34"
	b.Gender = "mostly female"
	b.Interests = []string{"makeup"}
	b.Locations = []string{"unknown"}

	table, ok := Demographics([]models.FrameRecord{a, b})
	assert.True(t, ok)
	assert.Equal(t, [][]string{
		{"Age Group", "25-34", "2"},
		{"Gender", "mostly female", "1"},
		{"Interest", "makeup", "2"},
		{"Interest", "skincare", "1"},
		{"Location", "Austin", "1"},
	}, table.Rows)
}

func TestCounterTieBreakIsFirstSeenOrder(t *testing.T) {
	c := newCounter()
	c.add("beta")
	c.add("alpha")
	c.add("gamma")
	c.add("alpha")

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, c.ranked())
}

func TestBuildIsIdempotent(t *testing.T) {
	records := []models.FrameRecord{record(100, 10, 0.4), record(150, 15, -0.6)}
	records[0].RawComments = []string{"nice", "which shade?"}
	records[0].ShadeMatchingComments = []string{"which shade?"}
	records[0].Recommendations = []string{"pin the offer"}

	first := Build(records, time.Minute)
	second := Build(records, time.Minute)

	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
}

func TestGeneratorsTolerateZeroValueRecords(t *testing.T) {
	// A record with every field at its zero value must not panic anywhere.
	records := []models.FrameRecord{{}}

	assert.NotPanics(t, func() {
		Build(records, time.Minute)
	})

	table, ok := ExecutiveSummary(records, time.Minute)
	assert.True(t, ok)
	assert.Equal(t, "0.0", summaryValue(t, table, "Viewer Growth (%)"))
}
