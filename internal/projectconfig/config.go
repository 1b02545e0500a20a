// Package projectconfig provides the ProjectConfig struct and loader for
// .postpulse.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultAPIBaseURL = "http://localhost:8080"

	DefaultCacheCapacity = 100

	DefaultServerPort = 3000

	DefaultSnapshotDir = ".postpulse-snapshots"
)

// APIConfig selects the analytics backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Mock    *bool  `yaml:"mock,omitempty"`
}

// CacheConfig holds in-memory request cache settings.
type CacheConfig struct {
	Enabled  *bool `yaml:"enabled,omitempty"`
	Capacity int   `yaml:"capacity,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port      int   `yaml:"port,omitempty"`
	AllowCORS *bool `yaml:"allow_cors,omitempty"`
}

// SnapshotConfig holds offline snapshot settings.
type SnapshotConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .postpulse.yaml.
type ProjectConfig struct {
	API      APIConfig      `yaml:"api,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Snapshot SnapshotConfig `yaml:"snapshot,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Mock:    boolPtr(true),
		},
		Cache: CacheConfig{
			Enabled:  boolPtr(true),
			Capacity: DefaultCacheCapacity,
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			AllowCORS: boolPtr(false),
		},
		Snapshot: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
	}
}

// Load finds .postpulse.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .postpulse.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .postpulse.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Save writes the config to .postpulse.yaml in dir.
func Save(dir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding .postpulse.yaml: %w", err)
	}
	path := filepath.Join(dir, ".postpulse.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// findConfigFile walks up from dir looking for .postpulse.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".postpulse.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// API
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.Mock != nil {
		dst.API.Mock = src.API.Mock
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Capacity != 0 {
		dst.Cache.Capacity = src.Cache.Capacity
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.AllowCORS != nil {
		dst.Server.AllowCORS = src.Server.AllowCORS
	}

	// Snapshot
	if src.Snapshot.Dir != "" {
		dst.Snapshot.Dir = src.Snapshot.Dir
	}
}

func boolPtr(b bool) *bool {
	return &b
}
