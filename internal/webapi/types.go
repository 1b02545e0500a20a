package webapi

// HealthResponse is the health check response. Backend reflects the
// upstream analytics source: "ok", "degraded", or "unreachable".
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Backend string `json:"backend"`
}

// MonthResponse is the API response for one month of recommendations.
type MonthResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayResponse `json:"days"`
}

// DayResponse is a single day's recommendation.
type DayResponse struct {
	Date       int                 `json:"date"`
	Weekday    string              `json:"weekday"`
	Score      float64             `json:"score"`
	Confidence float64             `json:"confidence"`
	Times      []string            `json:"times"`
	Reasoning  string              `json:"reasoning"`
	Status     string              `json:"status"` // "past" | "today" | "future"
	Historical *HistoricalResponse `json:"historical,omitempty"`
}

// HistoricalResponse carries the observed numbers behind a past day's score.
type HistoricalResponse struct {
	AvgEngagement *float64 `json:"avgEngagement,omitempty"`
	Views         *int     `json:"views,omitempty"`
	PostCount     int      `json:"postCount"`
	Reactions     int      `json:"reactions"`
}

// SummaryResponse is the aggregate KPI response for a month.
type SummaryResponse struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	AvgScore    float64          `json:"avgScore"`
	BestDate    int              `json:"bestDate"`
	BestWeekday string           `json:"bestWeekday"`
	BestScore   float64          `json:"bestScore"`
	SampleCount int              `json:"sampleCount"`
	Channel     *ChannelResponse `json:"channel,omitempty"`
}

// ChannelResponse mirrors the backend's channel snapshot.
type ChannelResponse struct {
	Subscribers    int     `json:"subscribers"`
	PostsPerWeek   float64 `json:"postsPerWeek"`
	AvgViews       float64 `json:"avgViews"`
	EngagementRate float64 `json:"engagementRate"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
