package recommend

import (
	"time"

	"github.com/postpulse/postpulse/internal/models"
)

// weeklyPatterns is the static per-weekday engagement profile. It is the
// sole input for predictions when no historical data exists, and always
// supplies the recommended times for past days.
var weeklyPatterns = map[time.Weekday]models.WeeklyPattern{
	time.Sunday:    {Weekday: time.Sunday, BaseScore: 72, BestTimes: []string{"11:00", "19:00"}, Confidence: 70},
	time.Monday:    {Weekday: time.Monday, BaseScore: 85, BestTimes: []string{"09:00", "12:30", "19:00"}, Confidence: 80},
	time.Tuesday:   {Weekday: time.Tuesday, BaseScore: 90, BestTimes: []string{"09:00", "13:00", "19:30"}, Confidence: 85},
	time.Wednesday: {Weekday: time.Wednesday, BaseScore: 88, BestTimes: []string{"10:00", "13:00", "20:00"}, Confidence: 85},
	time.Thursday:  {Weekday: time.Thursday, BaseScore: 86, BestTimes: []string{"09:30", "12:00", "19:00"}, Confidence: 80},
	time.Friday:    {Weekday: time.Friday, BaseScore: 78, BestTimes: []string{"10:00", "15:00"}, Confidence: 75},
	time.Saturday:  {Weekday: time.Saturday, BaseScore: 68, BestTimes: []string{"12:00", "18:00"}, Confidence: 65},
}

// seasonalMultipliers scales predicted scores by month. Summer months dip
// (audiences are away), autumn peaks.
var seasonalMultipliers = map[time.Month]float64{
	time.January:   1.05,
	time.February:  1.02,
	time.March:     1.00,
	time.April:     0.98,
	time.May:       0.95,
	time.June:      0.92,
	time.July:      0.90,
	time.August:    0.88,
	time.September: 1.04,
	time.October:   1.10,
	time.November:  1.08,
	time.December:  0.96,
}

// PatternFor returns the static weekly pattern for a weekday.
func PatternFor(wd time.Weekday) models.WeeklyPattern {
	return weeklyPatterns[wd]
}

// SeasonalMultiplier returns the score multiplier for a month.
func SeasonalMultiplier(m time.Month) float64 {
	return seasonalMultipliers[m]
}
