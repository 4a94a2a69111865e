package reports

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bdougie/streampulse/internal/models"
)

// recommendationSentinel is the manual-review marker the fallback record
// plants in recommendations; it must never surface as an insight.
const recommendationSentinel = "check screenshot manually"

// Insights counts recommendations, strengths and weaknesses across the whole
// run and ranks each group by frequency.
func Insights(records []models.FrameRecord) (Table, bool) {
	if len(records) == 0 {
		return Table{}, false
	}

	recommendations := newCounter()
	strengths := newCounter()
	weaknesses := newCounter()

	for _, rec := range records {
		for _, item := range rec.Recommendations {
			recommendations.add(item, recommendationSentinel)
		}
		for _, item := range rec.Strengths {
			strengths.add(item)
		}
		for _, item := range rec.Weaknesses {
			weaknesses.add(item)
		}
	}

	table := Table{
		Name:    "insights",
		Columns: []string{"category", "item", "frequency"},
	}
	appendRanked(&table, "Recommendation", recommendations)
	appendRanked(&table, "Strength", strengths)
	appendRanked(&table, "Weakness", weaknesses)
	return table, true
}

// Demographics counts age groups, genders, interests and locations across
// the whole run and ranks each group by frequency.
func Demographics(records []models.FrameRecord) (Table, bool) {
	if len(records) == 0 {
		return Table{}, false
	}

	ages := newCounter()
	genders := newCounter()
	interests := newCounter()
	locations := newCounter()

	for _, rec := range records {
		ages.add(rec.AgeGroup)
		genders.add(rec.Gender)
		for _, item := range rec.Interests {
			interests.add(item)
		}
		for _, item := range rec.Locations {
			locations.add(item)
		}
	}

	table := Table{
		Name:    "audience_demographics",
		Columns: []string{"category", "value", "count"},
	}
	appendRanked(&table, "Age Group", ages)
	appendRanked(&table, "Gender", genders)
	appendRanked(&table, "Interest", interests)
	appendRanked(&table, "Location", locations)
	return table, true
}

// counter is a frequency counter that remembers first-seen order so that
// equal frequencies rank deterministically.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// add trims the value and counts it unless it is "unknown" or one of the
// extra sentinels, compared case-insensitively.
func (c *counter) add(value string, sentinels ...string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	lower := strings.ToLower(trimmed)
	if lower == "unknown" {
		return
	}
	for _, s := range sentinels {
		if lower == s {
			return
		}
	}
	if _, seen := c.counts[trimmed]; !seen {
		c.keys = append(c.keys, trimmed)
	}
	c.counts[trimmed]++
}

// ranked returns the counted values sorted by descending frequency,
// first-seen order breaking ties.
func (c *counter) ranked() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	return out
}

func appendRanked(table *Table, category string, c *counter) {
	for _, value := range c.ranked() {
		table.Rows = append(table.Rows, []string{category, value, strconv.Itoa(c.counts[value])})
	}
}
