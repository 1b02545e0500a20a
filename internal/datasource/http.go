package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/postpulse/postpulse/internal/models"
	"github.com/postpulse/postpulse/internal/validation"
)

// Per-call timeouts. There is no retry or backoff: a failed call surfaces
// immediately and the caller degrades to a default.
const (
	historyTimeout   = 30 * time.Second
	bestTimesTimeout = 10 * time.Second
	statsTimeout     = 10 * time.Second
	healthTimeout    = 5 * time.Second
)

// HTTPSource talks to a real analytics backend over REST.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPSource creates a source for the backend at baseURL.
func NewHTTPSource(baseURL string, logger *slog.Logger) *HTTPSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
	}
}

// HistoricalDays fetches and validates one month of engagement samples.
func (s *HTTPSource) HistoricalDays(ctx context.Context, year int, month time.Month) ([]models.HistoricalDayData, error) {
	path := fmt.Sprintf("/v1/history?year=%d&month=%d", year, int(month))
	doc, err := s.getJSON(ctx, path, historyTimeout)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateHistory(doc); len(errs) > 0 {
		return nil, fmt.Errorf("history payload rejected: %s", strings.Join(errs, "; "))
	}

	var payload struct {
		Days []models.HistoricalDayData `mapstructure:"days"`
	}
	if err := mapstructure.Decode(doc, &payload); err != nil {
		return nil, fmt.Errorf("decoding history payload: %w", err)
	}
	return payload.Days, nil
}

// BestTimes fetches the curated per-weekday posting times.
func (s *HTTPSource) BestTimes(ctx context.Context) (map[time.Weekday][]string, error) {
	doc, err := s.getJSON(ctx, "/v1/best-times", bestTimesTimeout)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateBestTimes(doc); len(errs) > 0 {
		return nil, fmt.Errorf("best-times payload rejected: %s", strings.Join(errs, "; "))
	}

	var payload struct {
		BestTimes map[string][]string `mapstructure:"best_times"`
	}
	if err := mapstructure.Decode(doc, &payload); err != nil {
		return nil, fmt.Errorf("decoding best-times payload: %w", err)
	}

	times := make(map[time.Weekday][]string, len(payload.BestTimes))
	for key, list := range payload.BestTimes {
		// Keys are "0" (Sunday) through "6" (Saturday); the schema already
		// rejected anything else.
		times[time.Weekday(key[0]-'0')] = list
	}
	return times, nil
}

// ChannelStats fetches the channel's aggregate snapshot.
func (s *HTTPSource) ChannelStats(ctx context.Context) (*models.ChannelStats, error) {
	doc, err := s.getJSON(ctx, "/v1/stats", statsTimeout)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateStats(doc); len(errs) > 0 {
		return nil, fmt.Errorf("stats payload rejected: %s", strings.Join(errs, "; "))
	}

	var stats models.ChannelStats
	if err := mapstructure.Decode(doc, &stats); err != nil {
		return nil, fmt.Errorf("decoding stats payload: %w", err)
	}
	return &stats, nil
}

// Health checks backend reachability.
func (s *HTTPSource) Health(ctx context.Context) error {
	_, err := s.getJSON(ctx, "/v1/health", healthTimeout)
	return err
}

// getJSON performs a GET with a fixed timeout and decodes the body as
// untyped JSON for schema validation.
func (s *HTTPSource) getJSON(ctx context.Context, path string, timeout time.Duration) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}

	s.logger.Debug("backend call completed", "path", path)
	return doc, nil
}
