package webapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/postpulse/postpulse/internal/datasource"
	"github.com/postpulse/postpulse/internal/history"
	"github.com/postpulse/postpulse/internal/models"
	"github.com/stretchr/testify/require"
)

// downSource fails every call, simulating an unreachable backend.
type downSource struct{}

var _ datasource.Source = (*downSource)(nil)

var errDown = errors.New("connection refused")

func (downSource) HistoricalDays(context.Context, int, time.Month) ([]models.HistoricalDayData, error) {
	return nil, errDown
}
func (downSource) BestTimes(context.Context) (map[time.Weekday][]string, error) {
	return nil, errDown
}
func (downSource) ChannelStats(context.Context) (*models.ChannelStats, error) {
	return nil, errDown
}
func (downSource) Health(context.Context) error { return errDown }

func TestService_Month(t *testing.T) {
	svc := NewService(datasource.NewMockSource(), nil, nil)

	resp, err := svc.Month(context.Background(), 2026, time.June, 42)
	require.NoError(t, err)
	require.Equal(t, 2026, resp.Year)
	require.Equal(t, 6, resp.Month)
	require.Len(t, resp.Days, 30)

	for _, d := range resp.Days {
		require.Contains(t, []string{"past", "today", "future"}, d.Status)
		require.GreaterOrEqual(t, d.Score, 0.0)
		require.LessOrEqual(t, d.Score, 100.0)
	}
}

func TestService_MonthSeedReproducible(t *testing.T) {
	svc := NewService(datasource.NewMockSource(), nil, nil)

	a, err := svc.Month(context.Background(), 2026, time.June, 7)
	require.NoError(t, err)
	b, err := svc.Month(context.Background(), 2026, time.June, 7)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestService_MonthDegradesWhenBackendDown(t *testing.T) {
	svc := NewService(downSource{}, nil, nil)

	// Backend failures degrade to pattern-only predictions, not errors.
	resp, err := svc.Month(context.Background(), 2026, time.June, 1)
	require.NoError(t, err)
	require.Len(t, resp.Days, 30)
	for _, d := range resp.Days {
		require.Nil(t, d.Historical)
	}
}

func TestService_MonthFallsBackToSnapshot(t *testing.T) {
	snapshots := history.NewStore(t.TempDir())
	engagement := 250.0
	views := 2000
	require.NoError(t, snapshots.Save(2026, 6, []models.HistoricalDayData{
		{Date: 1, Weekday: time.Monday, AvgEngagement: &engagement, Views: &views, PostCount: 2},
	}))

	svc := NewService(downSource{}, snapshots, nil)
	resp, err := svc.Month(context.Background(), 2026, time.June, 1)
	require.NoError(t, err)

	require.NotNil(t, resp.Days[0].Historical)
	require.Equal(t, 2, resp.Days[0].Historical.PostCount)
}

func TestService_MonthRefreshesSnapshot(t *testing.T) {
	snapshots := history.NewStore(t.TempDir())
	svc := NewService(datasource.NewMockSource(), snapshots, nil)

	_, err := svc.Month(context.Background(), 2026, time.June, 1)
	require.NoError(t, err)

	months, err := snapshots.List()
	require.NoError(t, err)
	require.Equal(t, []string{"2026-06"}, months)
}

func TestService_Summary(t *testing.T) {
	svc := NewService(datasource.NewMockSource(), nil, nil)

	resp, err := svc.Summary(context.Background(), 2026, time.June)
	require.NoError(t, err)

	require.Equal(t, 2026, resp.Year)
	require.Greater(t, resp.AvgScore, 0.0)
	require.GreaterOrEqual(t, resp.BestScore, resp.AvgScore)
	require.GreaterOrEqual(t, resp.BestDate, 1)
	require.LessOrEqual(t, resp.BestDate, 30)
	require.NotNil(t, resp.Channel)
	require.Equal(t, 15400, resp.Channel.Subscribers)
}

func TestService_SummaryWithoutStats(t *testing.T) {
	svc := NewService(downSource{}, nil, nil)

	resp, err := svc.Summary(context.Background(), 2026, time.June)
	require.NoError(t, err)
	require.Nil(t, resp.Channel)
}

func TestService_Report(t *testing.T) {
	svc := NewService(datasource.NewMockSource(), nil, nil)

	html, err := svc.Report(context.Background(), 2026, time.June)
	require.NoError(t, err)
	require.Contains(t, string(html), "<h1>Posting plan")
}

func TestService_Backend(t *testing.T) {
	require.Equal(t, "ok", NewService(datasource.NewMockSource(), nil, nil).Backend(context.Background()))
	require.Equal(t, "unreachable", NewService(downSource{}, nil, nil).Backend(context.Background()))
	require.Equal(t, "degraded", NewService(downSource{}, history.NewStore(t.TempDir()), nil).Backend(context.Background()))
}
