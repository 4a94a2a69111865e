package reports

import (
	"strconv"

	"github.com/bdougie/streampulse/internal/models"
)

// Comment category labels, in precedence order. A comment that the model
// placed in more than one themed list gets the first matching category.
const (
	categoryShadeMatching    = "Shade Matching"
	categoryProductConfusion = "Product Confusion"
	categoryPromotions       = "Promotions/Offers"
	categoryTopQuestion      = "Top Question"
	categoryGeneral          = "General"
)

// CategorizedComments explodes every record's raw comments into one row per
// comment, tagged with the frame's metrics and the comment's category.
func CategorizedComments(records []models.FrameRecord) (Table, bool) {
	if len(records) == 0 {
		return Table{}, false
	}

	table := Table{
		Name:    "categorized_comments",
		Columns: []string{"time", "viewer_count", "likes_count", "comment", "sentiment_score", "category"},
	}
	for _, rec := range records {
		for _, comment := range rec.RawComments {
			table.Rows = append(table.Rows, []string{
				timeOfDay(rec.Timestamp),
				strconv.Itoa(rec.ViewerCount),
				strconv.Itoa(rec.LikesCount),
				comment,
				formatScore(rec.SentimentScore),
				categorize(comment, rec),
			})
		}
	}
	return table, true
}

// categorize tests themed-list membership by exact comment value, first
// match wins.
func categorize(comment string, rec models.FrameRecord) string {
	switch {
	case contains(rec.ShadeMatchingComments, comment):
		return categoryShadeMatching
	case contains(rec.ProductConfusionComments, comment):
		return categoryProductConfusion
	case contains(rec.PromotionsOffersComments, comment):
		return categoryPromotions
	case contains(rec.Top3Questions, comment):
		return categoryTopQuestion
	default:
		return categoryGeneral
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
