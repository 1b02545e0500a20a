package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/postpulse/postpulse/internal/cache"
	"github.com/postpulse/postpulse/internal/datasource"
	"github.com/postpulse/postpulse/internal/history"
	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/postpulse/postpulse/internal/webapi"
)

// buildSource constructs the analytics source the way the config asks for:
// mock or HTTP, optionally wrapped in the request cache.
func buildSource(cfg *projectconfig.ProjectConfig) datasource.Source {
	var src datasource.Source
	if cfg.API.Mock != nil && *cfg.API.Mock {
		src = datasource.NewMockSource()
	} else {
		src = datasource.NewHTTPSource(cfg.API.BaseURL, slog.Default())
	}

	if cfg.Cache.Enabled != nil && *cfg.Cache.Enabled {
		src = datasource.NewCachedSource(src, cache.New(cfg.Cache.Capacity))
	}
	return src
}

// buildService wires the source and the snapshot store into the service the
// commands and the HTTP API share. The source is returned as well so callers
// can warm its cache.
func buildService(cfg *projectconfig.ProjectConfig) (*webapi.Service, datasource.Source) {
	src := buildSource(cfg)
	var snapshots *history.Store
	if cfg.Snapshot.Dir != "" {
		snapshots = history.NewStore(cfg.Snapshot.Dir)
	}
	return webapi.NewService(src, snapshots, slog.Default()), src
}

// parseMonth parses a "YYYY-MM" flag value. An empty value means the
// current month.
func parseMonth(value string, now func() time.Time) (int, time.Month, error) {
	if value == "" {
		y, m, _ := now().Date()
		return y, m, nil
	}

	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("month must be formatted as YYYY-MM, got %q", value)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1970 || year > 2100 {
		return 0, 0, fmt.Errorf("invalid year in %q", value)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in %q", value)
	}
	return year, time.Month(month), nil
}
