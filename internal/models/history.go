package models

import "time"

// HistoricalDayData is one observed calendar day of channel activity as
// reported by the analytics backend. It is never mutated after decoding.
//
// AvgEngagement and Views are pointers because the backend omits them for
// days without posts, and the scorer distinguishes "zero" from "absent".
type HistoricalDayData struct {
	Date          int          `json:"date" mapstructure:"date"` // day of month, 1-based
	Weekday       time.Weekday `json:"weekday" mapstructure:"weekday"`
	AvgEngagement *float64     `json:"avg_engagement,omitempty" mapstructure:"avg_engagement"`
	PostCount     int          `json:"post_count,omitempty" mapstructure:"post_count"`
	Views         *int         `json:"views,omitempty" mapstructure:"views"`
	Reactions     int          `json:"reactions,omitempty" mapstructure:"reactions"`
}

// EngagementRate returns the engagement percentage for the day and whether
// it could be derived. When views are known the rate is engagement per view;
// otherwise the raw engagement value is used, capped at 15 so that absolute
// counts from small channels do not saturate the scale.
func (h *HistoricalDayData) EngagementRate() (float64, bool) {
	if h == nil || h.AvgEngagement == nil {
		return 0, false
	}
	if h.Views != nil && *h.Views > 0 {
		return *h.AvgEngagement / float64(*h.Views) * 100, true
	}
	rate := *h.AvgEngagement
	if rate > 15 {
		rate = 15
	}
	return rate, true
}

// ChannelStats is the aggregate snapshot of a channel reported by the
// analytics backend.
type ChannelStats struct {
	Subscribers    int     `json:"subscribers" mapstructure:"subscribers"`
	PostsPerWeek   float64 `json:"posts_per_week" mapstructure:"posts_per_week"`
	AvgViews       float64 `json:"avg_views" mapstructure:"avg_views"`
	AvgReactions   float64 `json:"avg_reactions" mapstructure:"avg_reactions"`
	EngagementRate float64 `json:"engagement_rate" mapstructure:"engagement_rate"`
}
