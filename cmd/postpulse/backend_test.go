package main

import (
	"testing"
	"time"

	"github.com/postpulse/postpulse/internal/datasource"
	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{name: "explicit month", input: "2026-06", wantYear: 2026, wantMonth: time.June},
		{name: "single digit month", input: "2026-6", wantYear: 2026, wantMonth: time.June},
		{name: "empty means current", input: "", wantYear: 2026, wantMonth: time.June},
		{name: "month out of range", input: "2026-13", wantErr: true},
		{name: "month zero", input: "2026-00", wantErr: true},
		{name: "missing separator", input: "202606", wantErr: true},
		{name: "not a year", input: "soon-06", wantErr: true},
		{name: "year out of range", input: "1899-06", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, err := parseMonth(tt.input, fixedNow)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestBuildSource_MockWithCache(t *testing.T) {
	cfg := projectconfig.New() // mock + cache enabled by default
	src := buildSource(cfg)

	_, ok := src.(*datasource.CachedSource)
	assert.True(t, ok, "default config should wrap the source in the cache")
}

func TestBuildSource_CacheDisabled(t *testing.T) {
	cfg := projectconfig.New()
	enabled := false
	cfg.Cache.Enabled = &enabled

	src := buildSource(cfg)
	_, ok := src.(*datasource.MockSource)
	assert.True(t, ok, "cache disabled should return the bare source")
}

func TestBuildSource_HTTP(t *testing.T) {
	cfg := projectconfig.New()
	mock := false
	cfg.API.Mock = &mock
	enabled := false
	cfg.Cache.Enabled = &enabled

	src := buildSource(cfg)
	_, ok := src.(*datasource.HTTPSource)
	assert.True(t, ok)
}
