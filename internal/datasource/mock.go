package datasource

import (
	"context"
	"math/rand"
	"time"

	"github.com/postpulse/postpulse/internal/models"
	"github.com/postpulse/postpulse/internal/recommend"
)

// MockSource returns canned analytics, optionally after an artificial
// delay. Output is deterministic per month so the CLI and dashboard look
// stable across refreshes.
type MockSource struct {
	delay time.Duration
}

// NewMockSource creates a mock source with no artificial delay.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// NewMockSourceWithDelay creates a mock source that sleeps before every
// response, to exercise timeout and cancellation paths.
func NewMockSourceWithDelay(delay time.Duration) *MockSource {
	return &MockSource{delay: delay}
}

// HistoricalDays generates plausible engagement samples for roughly two
// thirds of the month's days, seeded by the month so output is stable.
func (m *MockSource) HistoricalDays(ctx context.Context, year int, month time.Month) ([]models.HistoricalDayData, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(int64(year)*100 + int64(month)))
	days := recommend.DaysInMonth(year, month)

	var out []models.HistoricalDayData
	for day := 1; day <= days; day++ {
		if rng.Float64() < 0.33 {
			continue // day without posts
		}
		wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
		views := 800 + rng.Intn(2400)
		rate := 0.5 + rng.Float64()*11 // engagement percentage
		engagement := rate / 100 * float64(views)
		out = append(out, models.HistoricalDayData{
			Date:          day,
			Weekday:       wd,
			AvgEngagement: &engagement,
			PostCount:     1 + rng.Intn(4),
			Views:         &views,
			Reactions:     int(engagement * 0.6),
		})
	}
	return out, nil
}

// BestTimes returns a fixed curated schedule.
func (m *MockSource) BestTimes(ctx context.Context) (map[time.Weekday][]string, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return map[time.Weekday][]string{
		time.Tuesday:  {"08:30", "20:00"},
		time.Thursday: {"12:00", "19:00"},
	}, nil
}

// ChannelStats returns a fixed snapshot.
func (m *MockSource) ChannelStats(ctx context.Context) (*models.ChannelStats, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return &models.ChannelStats{
		Subscribers:    15400,
		PostsPerWeek:   5.5,
		AvgViews:       3200,
		AvgReactions:   131,
		EngagementRate: 4.1,
	}, nil
}

// Health always succeeds once the delay elapses.
func (m *MockSource) Health(ctx context.Context) error {
	return m.wait(ctx)
}

func (m *MockSource) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure both implementations satisfy Source.
var (
	_ Source = (*HTTPSource)(nil)
	_ Source = (*MockSource)(nil)
)
