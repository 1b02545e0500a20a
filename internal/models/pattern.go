package models

import "time"

// WeeklyPattern describes the static engagement profile for one day of the
// week. The table of seven patterns is hard-coded and immutable at runtime;
// it is the fallback the scorer uses when no historical data is available.
type WeeklyPattern struct {
	Weekday    time.Weekday `json:"weekday"`
	BaseScore  float64      `json:"base_score"`  // 0-100
	BestTimes  []string     `json:"best_times"`  // "HH:MM", channel-local time
	Confidence float64      `json:"confidence"`  // 0-100
}
