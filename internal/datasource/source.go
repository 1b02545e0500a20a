// Package datasource abstracts the analytics backend behind a Source
// interface with interchangeable real and mock implementations, plus a
// caching decorator. Selection happens by explicit construction from
// configuration; there is no global switch.
package datasource

import (
	"context"
	"time"

	"github.com/postpulse/postpulse/internal/models"
)

// Method names shared between cache keying and TTL configuration.
const (
	MethodHistoricalDays = "historicalDays"
	MethodBestTimes      = "bestTimes"
	MethodChannelStats   = "channelStats"
)

// Source fetches channel analytics. All calls honor context cancellation;
// implementations apply their own fixed timeouts and do not retry.
type Source interface {
	// HistoricalDays returns per-day engagement samples for a month.
	HistoricalDays(ctx context.Context, year int, month time.Month) ([]models.HistoricalDayData, error)

	// BestTimes returns caller-curated posting times per weekday.
	BestTimes(ctx context.Context) (map[time.Weekday][]string, error)

	// ChannelStats returns the channel's aggregate snapshot.
	ChannelStats(ctx context.Context) (*models.ChannelStats, error)

	// Health reports whether the backend is reachable.
	Health(ctx context.Context) error
}
