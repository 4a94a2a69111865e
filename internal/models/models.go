package models

import "time"

// FrameRecord is the full extraction result for one captured frame. Every
// field is always populated — real values from the vision model, or the
// sentinel defaults from FallbackRecord. Records are never mutated after the
// analyzer returns them.
type FrameRecord struct {
	Timestamp string `json:"timestamp"`
	ImageRef  string `json:"image_ref"`

	ViewerCount    int     `json:"viewer_count"`
	LikesCount     int     `json:"likes_count"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`

	RawComments              []string `json:"raw_comments"`
	ShadeMatchingComments    []string `json:"shade_matching_comments"`
	ProductConfusionComments []string `json:"product_confusion_comments"`
	PromotionsOffersComments []string `json:"promotions_offers_comments"`

	ProductMentions  []string `json:"product_mentions"`
	SpecificConcerns []string `json:"specific_concerns"`
	Top3Questions    []string `json:"top_3_questions"`

	EngagementLevel string   `json:"engagement_level"`
	AgeGroup        string   `json:"age_group"`
	Gender          string   `json:"gender"`
	Interests       []string `json:"interests"`
	Locations       []string `json:"locations"`

	SalesIndicators []string `json:"sales_indicators"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
}

// FallbackRecord is the deterministic record returned when extraction cannot
// succeed: counts and score zero, neutral sentiment, unknown sentinels for
// the demographic/product/concern fields, and a manual-review marker in the
// recommendations.
func FallbackRecord(imageRef string, now time.Time) FrameRecord {
	rec := sentinelRecord()
	rec.Timestamp = now.Format(time.RFC3339)
	rec.ImageRef = imageRef
	return rec
}

// sentinelRecord holds the per-field defaults shared by the fallback path and
// by RecordFromPayload for keys the model left out.
func sentinelRecord() FrameRecord {
	return FrameRecord{
		SentimentLabel: "neutral",

		RawComments:              []string{},
		ShadeMatchingComments:    []string{},
		ProductConfusionComments: []string{},
		PromotionsOffersComments: []string{},

		ProductMentions:  []string{"unknown"},
		SpecificConcerns: []string{"unknown"},
		Top3Questions:    []string{},

		EngagementLevel: "unknown",
		AgeGroup:        "unknown",
		Gender:          "unknown",
		Interests:       []string{"unknown"},
		Locations:       []string{"unknown"},

		SalesIndicators: []string{"unknown"},
		Recommendations: []string{"Check screenshot manually"},
		Strengths:       []string{},
		Weaknesses:      []string{},
	}
}

// RecordFromPayload builds a FrameRecord from a decoded model response.
// Every key is read with a typed default so a partial or sloppy response
// still yields a complete record. Timestamp and ImageRef are stamped by the
// caller, not taken from the model.
func RecordFromPayload(payload map[string]any) FrameRecord {
	rec := sentinelRecord()

	rec.ViewerCount = getCount(payload, "viewer_count", rec.ViewerCount)
	rec.LikesCount = getCount(payload, "likes_count", rec.LikesCount)
	rec.SentimentLabel = getString(payload, "sentiment_label", rec.SentimentLabel)
	rec.SentimentScore = getFloat(payload, "sentiment_score", rec.SentimentScore)

	rec.RawComments = getStrings(payload, "raw_comments", rec.RawComments)
	rec.ShadeMatchingComments = getStrings(payload, "shade_matching_comments", rec.ShadeMatchingComments)
	rec.ProductConfusionComments = getStrings(payload, "product_confusion_comments", rec.ProductConfusionComments)
	rec.PromotionsOffersComments = getStrings(payload, "promotions_offers_comments", rec.PromotionsOffersComments)

	rec.ProductMentions = getStrings(payload, "product_mentions", rec.ProductMentions)
	rec.SpecificConcerns = getStrings(payload, "specific_concerns", rec.SpecificConcerns)
	rec.Top3Questions = getStrings(payload, "top_3_questions", rec.Top3Questions)

	rec.EngagementLevel = getString(payload, "engagement_level", rec.EngagementLevel)
	rec.AgeGroup = getString(payload, "age_group", rec.AgeGroup)
	rec.Gender = getString(payload, "gender", rec.Gender)
	rec.Interests = getStrings(payload, "interests", rec.Interests)
	rec.Locations = getStrings(payload, "locations", rec.Locations)

	rec.SalesIndicators = getStrings(payload, "sales_indicators", rec.SalesIndicators)
	rec.Recommendations = getStrings(payload, "recommendations", rec.Recommendations)
	rec.Strengths = getStrings(payload, "strengths", rec.Strengths)
	rec.Weaknesses = getStrings(payload, "weaknesses", rec.Weaknesses)

	return rec
}

func getString(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

// getCount reads a numeric field, tolerating the float64 that encoding/json
// produces for every JSON number. Counts are clamped at zero.
func getCount(m map[string]any, key string, def int) int {
	n := getFloat(m, key, float64(def))
	if n < 0 {
		return 0
	}
	return int(n)
}

func getFloat(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return def
}

func getStrings(m map[string]any, key string, def []string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return def
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
