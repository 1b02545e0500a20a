// Package recommend computes per-day posting recommendations for a calendar
// month from historical engagement samples and a static weekly pattern table.
package recommend

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/postpulse/postpulse/internal/metrics"
	"github.com/postpulse/postpulse/internal/models"
)

// Prediction blend weights: the static weekday base score contributes 30%,
// the mean historical score for that weekday 70%.
const (
	baseWeight       = 0.30
	historicalWeight = 0.70

	jitterRange = 10 // uniform jitter in [-10, +10] applied to predictions

	sampleConfidenceStep  = 2  // confidence points per historical sample
	sampleConfidenceCap   = 20 // max confidence gained from sample count
	consistencyBonus      = 10 // added when weekday scores have stddev < 10
	noSamplePenalty       = 15 // subtracted when a weekday has no samples
	maxHistoricalConfidence  = 95
	baseHistoricalConfidence = 70
	postCountConfidenceStep  = 5
)

// Engine generates monthly posting recommendations.
//
// Jitter makes predicted scores non-deterministic by default; construct with
// a non-negative seed for reproducible output (the HTTP API and tests do
// this). The clock is injectable so day classification can be pinned.
type Engine struct {
	now func() time.Time
	rng *rand.Rand
}

// NewEngine creates an engine with a non-deterministic jitter source.
func NewEngine() *Engine {
	return NewEngineWithSeed(-1)
}

// NewEngineWithSeed is like NewEngine but accepts a seed for reproducibility.
// A negative seed uses a non-deterministic source.
func NewEngineWithSeed(seed int64) *Engine {
	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{now: time.Now, rng: rng}
}

// SetClock overrides the time source used to classify days as past, today,
// or future.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// GenerateMonthly produces one DailyRecommendation per calendar day of the
// given month, ordered by day ascending. historical may be nil; days without
// historical data degrade to pattern-only predictions. bestTimesByDay
// overrides the recommended times for future days when present.
func (e *Engine) GenerateMonthly(year int, month time.Month, historical []models.HistoricalDayData, bestTimesByDay map[time.Weekday][]string) []models.DailyRecommendation {
	days := DaysInMonth(year, month)

	histByDate := make(map[int]*models.HistoricalDayData, len(historical))
	for i := range historical {
		h := &historical[i]
		histByDate[h.Date] = h
	}

	ty, tm, td := e.now().Date()
	todayKey := dateKey(ty, tm, td)

	recs := make([]models.DailyRecommendation, 0, days)
	for day := 1; day <= days; day++ {
		wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
		pattern := weeklyPatterns[wd]

		key := dateKey(year, month, day)
		rec := models.DailyRecommendation{
			Date:     day,
			Weekday:  wd,
			IsPast:   key < todayKey,
			IsToday:  key == todayKey,
			IsFuture: key > todayKey,
		}

		h := histByDate[day]
		rec.HistoricalData = h

		if rec.IsPast && h != nil {
			rec.RecommendationScore = historicalScore(h)
			rec.Confidence = historicalConfidence(h)
			rec.RecommendedTimes = pattern.BestTimes
			rec.Reasoning = historicalReasoning(wd, h, rec.RecommendationScore)
		} else {
			score, conf, samples := e.predict(month, wd, pattern, historical)
			rec.RecommendationScore = score
			rec.Confidence = conf
			rec.RecommendedTimes = recommendedTimes(rec.IsPast, wd, pattern, bestTimesByDay)
			rec.Reasoning = predictedReasoning(wd, score, samples)
		}

		rec.RecommendationScore = metrics.Clamp(rec.RecommendationScore, 0, 100)
		rec.Confidence = metrics.Clamp(rec.Confidence, 0, 100)
		recs = append(recs, rec)
	}
	return recs
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateKey collapses a calendar date into a single comparable integer.
func dateKey(y int, m time.Month, d int) int {
	return y*10000 + int(m)*100 + d
}

// historicalScore is a step function over the day's engagement rate.
func historicalScore(h *models.HistoricalDayData) float64 {
	rate, ok := h.EngagementRate()
	if !ok {
		return 30
	}
	switch {
	case rate >= 10:
		return 95
	case rate >= 5:
		return 85
	case rate >= 3:
		return 70
	case rate >= 1:
		return 55
	default:
		return 35
	}
}

// historicalConfidence grows with the number of posts observed that day.
func historicalConfidence(h *models.HistoricalDayData) float64 {
	c := float64(baseHistoricalConfidence + h.PostCount*postCountConfidenceStep)
	if c > maxHistoricalConfidence {
		c = maxHistoricalConfidence
	}
	return c
}

// predict blends the static weekday base score with the mean historical
// score for that weekday, applies the seasonal multiplier, and adds jitter.
// Returns the score, the confidence, and the number of weekday samples used.
func (e *Engine) predict(month time.Month, wd time.Weekday, pattern models.WeeklyPattern, historical []models.HistoricalDayData) (float64, float64, int) {
	var dayScores []float64
	for i := range historical {
		if historical[i].Weekday == wd {
			dayScores = append(dayScores, historicalScore(&historical[i]))
		}
	}

	score := pattern.BaseScore
	if len(dayScores) > 0 {
		score = pattern.BaseScore*baseWeight + metrics.Mean(dayScores)*historicalWeight
	}
	score *= seasonalMultipliers[month]
	score += e.rng.Float64()*2*jitterRange - jitterRange

	conf := pattern.Confidence
	if len(dayScores) == 0 {
		conf -= noSamplePenalty
	} else {
		gain := float64(len(dayScores) * sampleConfidenceStep)
		if gain > sampleConfidenceCap {
			gain = sampleConfidenceCap
		}
		conf += gain
		if metrics.StdDev(dayScores) < 10 {
			conf += consistencyBonus
		}
	}

	return score, conf, len(dayScores)
}

// recommendedTimes picks the posting times for a day that has no usable
// historical record. Past days always fall back to the static pattern.
func recommendedTimes(isPast bool, wd time.Weekday, pattern models.WeeklyPattern, bestTimesByDay map[time.Weekday][]string) []string {
	if !isPast {
		if times, ok := bestTimesByDay[wd]; ok && len(times) > 0 {
			return times
		}
	}
	return pattern.BestTimes
}

// historicalReasoning explains a past day's score in one of four tiers.
func historicalReasoning(wd time.Weekday, h *models.HistoricalDayData, score float64) string {
	rate, ok := h.EngagementRate()
	if !ok {
		return fmt.Sprintf("No engagement data recorded for this %s", wd)
	}
	switch {
	case score >= 90:
		return fmt.Sprintf("%s performed exceptionally: %.1f%% engagement rate over %d post(s)", wd, rate, h.PostCount)
	case score >= 70:
		return fmt.Sprintf("%s performed well: %.1f%% engagement rate", wd, rate)
	case score >= 50:
		return fmt.Sprintf("%s saw moderate engagement: %.1f%% rate", wd, rate)
	default:
		return fmt.Sprintf("%s underperformed: only %.1f%% engagement rate", wd, rate)
	}
}

// predictedReasoning explains a predicted score in one of three tiers.
func predictedReasoning(wd time.Weekday, score float64, samples int) string {
	var msg string
	switch {
	case score >= 85:
		msg = fmt.Sprintf("%s is typically a strong posting day for this audience", wd)
	case score >= 65:
		msg = fmt.Sprintf("%s usually sees steady engagement", wd)
	default:
		msg = fmt.Sprintf("%s tends to be quieter; consider saving big posts for another day", wd)
	}
	if samples > 0 {
		msg += fmt.Sprintf(" (based on %d historical %s sample(s))", samples, wd)
	}
	return msg
}
