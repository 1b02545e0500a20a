package datasource

import (
	"context"
	"time"

	"github.com/postpulse/postpulse/internal/cache"
	"github.com/postpulse/postpulse/internal/models"
	"golang.org/x/sync/errgroup"
)

// Per-method TTLs. History changes at most daily, the curated schedule
// rarely, the aggregate snapshot often.
const (
	historyTTL   = 10 * time.Minute
	bestTimesTTL = time.Hour
	statsTTL     = 2 * time.Minute
)

// monthParams keys history lookups in the cache.
type monthParams struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CachedSource decorates a Source with the TTL request cache. Health is
// deliberately never cached.
type CachedSource struct {
	src   Source
	cache *cache.Cache
}

// NewCachedSource wraps src with a cache and configures per-method TTLs.
func NewCachedSource(src Source, c *cache.Cache) *CachedSource {
	c.SetTTL(MethodHistoricalDays, historyTTL)
	c.SetTTL(MethodBestTimes, bestTimesTTL)
	c.SetTTL(MethodChannelStats, statsTTL)
	return &CachedSource{src: src, cache: c}
}

func (s *CachedSource) HistoricalDays(ctx context.Context, year int, month time.Month) ([]models.HistoricalDayData, error) {
	params := monthParams{Year: year, Month: int(month)}
	if v, ok := s.cache.Get(MethodHistoricalDays, params); ok {
		return v.([]models.HistoricalDayData), nil
	}
	days, err := s.src.HistoricalDays(ctx, year, month)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Put(MethodHistoricalDays, params, days)
	return days, nil
}

func (s *CachedSource) BestTimes(ctx context.Context) (map[time.Weekday][]string, error) {
	if v, ok := s.cache.Get(MethodBestTimes, nil); ok {
		return v.(map[time.Weekday][]string), nil
	}
	times, err := s.src.BestTimes(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Put(MethodBestTimes, nil, times)
	return times, nil
}

func (s *CachedSource) ChannelStats(ctx context.Context) (*models.ChannelStats, error) {
	if v, ok := s.cache.Get(MethodChannelStats, nil); ok {
		return v.(*models.ChannelStats), nil
	}
	stats, err := s.src.ChannelStats(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Put(MethodChannelStats, nil, stats)
	return stats, nil
}

func (s *CachedSource) Health(ctx context.Context) error {
	return s.src.Health(ctx)
}

// Warm prefetches several months of history concurrently, typically on
// server startup. The first error cancels the remaining fetches.
func (s *CachedSource) Warm(ctx context.Context, year int, months []time.Month) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, month := range months {
		g.Go(func() error {
			_, err := s.HistoricalDays(gctx, year, month)
			return err
		})
	}
	return g.Wait()
}

// Stats exposes the underlying cache counters.
func (s *CachedSource) Stats() cache.Stats {
	return s.cache.Stats()
}

var _ Source = (*CachedSource)(nil)
