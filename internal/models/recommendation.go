package models

import "time"

// DailyRecommendation is the scorer output for one calendar day. It is
// computed fresh on every call and never persisted.
//
// Exactly one of IsPast, IsToday, IsFuture is true, relative to the date the
// recommendation was generated.
type DailyRecommendation struct {
	Date                int                `json:"date"` // day of month, 1-based
	Weekday             time.Weekday       `json:"weekday"`
	RecommendationScore float64            `json:"recommendation_score"` // 0-100
	RecommendedTimes    []string           `json:"recommended_times"`
	Confidence          float64            `json:"confidence"` // 0-100
	Reasoning           string             `json:"reasoning"`
	IsPast              bool               `json:"is_past"`
	IsToday             bool               `json:"is_today"`
	IsFuture            bool               `json:"is_future"`
	HistoricalData      *HistoricalDayData `json:"historical_data,omitempty"`
}
