// Package report renders a month of recommendations as a markdown document
// and as HTML for the dashboard.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/postpulse/postpulse/internal/metrics"
	"github.com/postpulse/postpulse/internal/models"
	"github.com/yuin/goldmark"
)

// topDayCount limits the "best days" section.
const topDayCount = 3

// BuildMarkdown renders the month's recommendations as markdown. stats may
// be nil when the backend snapshot is unavailable.
func BuildMarkdown(year int, month time.Month, recs []models.DailyRecommendation, stats *models.ChannelStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Posting plan — %s %d\n\n", month, year)

	if stats != nil {
		fmt.Fprintf(&b, "Channel: %d subscribers, %.1f posts/week, %.1f%% engagement rate.\n\n",
			stats.Subscribers, stats.PostsPerWeek, stats.EngagementRate)
	}

	scores := make([]float64, 0, len(recs))
	for _, r := range recs {
		scores = append(scores, r.RecommendationScore)
	}
	fmt.Fprintf(&b, "Average day score: **%.1f**.\n\n", metrics.Mean(scores))

	b.WriteString("## Best days\n\n")
	for _, r := range topDays(recs) {
		fmt.Fprintf(&b, "- **%s %d** — score %.0f, post at %s. %s\n",
			r.Weekday, r.Date, r.RecommendationScore, strings.Join(r.RecommendedTimes, ", "), r.Reasoning)
	}
	b.WriteString("\n## Day by day\n\n")
	b.WriteString("| Day | Weekday | Score | Confidence | Times |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, r := range recs {
		marker := ""
		if r.IsToday {
			marker = " (today)"
		}
		fmt.Fprintf(&b, "| %d%s | %s | %.0f | %.0f | %s |\n",
			r.Date, marker, r.Weekday, r.RecommendationScore, r.Confidence, strings.Join(r.RecommendedTimes, ", "))
	}

	return b.String()
}

// RenderHTML converts report markdown to HTML.
func RenderHTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

// topDays returns the highest-scoring non-past days, score descending.
// Ties keep calendar order.
func topDays(recs []models.DailyRecommendation) []models.DailyRecommendation {
	upcoming := make([]models.DailyRecommendation, 0, len(recs))
	for _, r := range recs {
		if !r.IsPast {
			upcoming = append(upcoming, r)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].RecommendationScore > upcoming[j].RecommendationScore
	})
	if len(upcoming) > topDayCount {
		upcoming = upcoming[:topDayCount]
	}
	return upcoming
}
