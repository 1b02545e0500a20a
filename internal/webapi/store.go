package webapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/postpulse/postpulse/internal/datasource"
	"github.com/postpulse/postpulse/internal/history"
	"github.com/postpulse/postpulse/internal/models"
	"github.com/postpulse/postpulse/internal/recommend"
	"github.com/postpulse/postpulse/internal/report"
)

// RecommendationStore is the interface the HTTP handlers use. Implementations
// must be safe for concurrent use.
type RecommendationStore interface {
	// Month generates recommendations for a month. A non-negative seed
	// makes predicted scores reproducible.
	Month(ctx context.Context, year int, month time.Month, seed int64) (*MonthResponse, error)

	// Summary aggregates a month into dashboard KPIs.
	Summary(ctx context.Context, year int, month time.Month) (*SummaryResponse, error)

	// Report renders a month as an HTML report.
	Report(ctx context.Context, year int, month time.Month) ([]byte, error)

	// Backend reports the upstream source state: "ok", "degraded", or
	// "unreachable".
	Backend(ctx context.Context) string
}

// Service implements RecommendationStore on top of an analytics Source. When
// the backend fails, it degrades to snapshots (if configured) and then to
// pattern-only predictions rather than returning an error.
type Service struct {
	src       datasource.Source
	snapshots *history.Store
	logger    *slog.Logger
}

var _ RecommendationStore = (*Service)(nil)

// NewService creates a Service. snapshots may be nil to disable the
// offline fallback.
func NewService(src datasource.Source, snapshots *history.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{src: src, snapshots: snapshots, logger: logger}
}

func (s *Service) Month(ctx context.Context, year int, month time.Month, seed int64) (*MonthResponse, error) {
	historical := s.historicalDays(ctx, year, month)

	bestTimes, err := s.src.BestTimes(ctx)
	if err != nil {
		s.logger.Warn("best times unavailable, using weekly patterns", "error", err)
		bestTimes = nil
	}

	engine := recommend.NewEngineWithSeed(seed)
	recs := engine.GenerateMonthly(year, month, historical, bestTimes)

	resp := &MonthResponse{Year: year, Month: int(month), Days: make([]DayResponse, 0, len(recs))}
	for _, r := range recs {
		resp.Days = append(resp.Days, toDayResponse(r))
	}
	return resp, nil
}

func (s *Service) Summary(ctx context.Context, year int, month time.Month) (*SummaryResponse, error) {
	monthResp, err := s.Month(ctx, year, month, -1)
	if err != nil {
		return nil, err
	}
	if len(monthResp.Days) == 0 {
		return nil, fmt.Errorf("no days generated for %s %d", month, year)
	}

	resp := &SummaryResponse{Year: year, Month: int(month)}

	var total float64
	best := monthResp.Days[0]
	for _, d := range monthResp.Days {
		total += d.Score
		if d.Score > best.Score {
			best = d
		}
		if d.Historical != nil {
			resp.SampleCount += d.Historical.PostCount
		}
	}
	resp.AvgScore = total / float64(len(monthResp.Days))
	resp.BestDate = best.Date
	resp.BestWeekday = best.Weekday
	resp.BestScore = best.Score

	stats, err := s.src.ChannelStats(ctx)
	if err != nil {
		s.logger.Warn("channel stats unavailable", "error", err)
	} else if stats != nil {
		resp.Channel = &ChannelResponse{
			Subscribers:    stats.Subscribers,
			PostsPerWeek:   stats.PostsPerWeek,
			AvgViews:       stats.AvgViews,
			EngagementRate: stats.EngagementRate,
		}
	}
	return resp, nil
}

func (s *Service) Report(ctx context.Context, year int, month time.Month) ([]byte, error) {
	md, err := s.ReportMarkdown(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return report.RenderHTML(md)
}

// ReportMarkdown renders the month's posting plan as markdown.
func (s *Service) ReportMarkdown(ctx context.Context, year int, month time.Month) (string, error) {
	historical := s.historicalDays(ctx, year, month)

	bestTimes, err := s.src.BestTimes(ctx)
	if err != nil {
		s.logger.Warn("best times unavailable, using weekly patterns", "error", err)
		bestTimes = nil
	}

	stats, err := s.src.ChannelStats(ctx)
	if err != nil {
		s.logger.Warn("channel stats unavailable", "error", err)
		stats = nil
	}

	recs := recommend.NewEngine().GenerateMonthly(year, month, historical, bestTimes)
	return report.BuildMarkdown(year, month, recs, stats), nil
}

func (s *Service) Backend(ctx context.Context) string {
	if err := s.src.Health(ctx); err != nil {
		if s.snapshots != nil {
			return "degraded"
		}
		return "unreachable"
	}
	return "ok"
}

// historicalDays fetches the month's samples, falling back to the snapshot
// store and finally to nil. A successful fetch refreshes the snapshot.
func (s *Service) historicalDays(ctx context.Context, year int, month time.Month) []models.HistoricalDayData {
	days, err := s.src.HistoricalDays(ctx, year, month)
	if err == nil {
		if s.snapshots != nil {
			if saveErr := s.snapshots.Save(year, int(month), days); saveErr != nil {
				s.logger.Warn("saving snapshot failed", "year", year, "month", int(month), "error", saveErr)
			}
		}
		return days
	}

	s.logger.Warn("historical data unavailable", "year", year, "month", int(month), "error", err)
	if s.snapshots != nil {
		if days, snapErr := s.snapshots.Load(year, int(month)); snapErr == nil {
			s.logger.Info("using snapshot for month", "year", year, "month", int(month))
			return days
		}
	}
	return nil
}

func toDayResponse(r models.DailyRecommendation) DayResponse {
	d := DayResponse{
		Date:       r.Date,
		Weekday:    r.Weekday.String(),
		Score:      r.RecommendationScore,
		Confidence: r.Confidence,
		Times:      r.RecommendedTimes,
		Reasoning:  r.Reasoning,
		Status:     dayStatus(r),
	}
	if r.HistoricalData != nil {
		d.Historical = &HistoricalResponse{
			AvgEngagement: r.HistoricalData.AvgEngagement,
			Views:         r.HistoricalData.Views,
			PostCount:     r.HistoricalData.PostCount,
			Reactions:     r.HistoricalData.Reactions,
		}
	}
	return d
}

func dayStatus(r models.DailyRecommendation) string {
	switch {
	case r.IsPast:
		return "past"
	case r.IsToday:
		return "today"
	default:
		return "future"
	}
}
