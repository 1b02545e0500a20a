// Package history persists fetched engagement months as compressed JSON
// snapshots so recommendations can be generated while the backend is
// unreachable.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/postpulse/postpulse/internal/models"
)

// ErrNoSnapshot is returned when no snapshot exists for the requested month.
var ErrNoSnapshot = errors.New("no snapshot for month")

// Store reads and writes monthly snapshots under a directory. Files are
// named YYYY-MM.json.gz.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes a month of samples, replacing any existing snapshot.
func (s *Store) Save(year int, month int, days []models.HistoricalDayData) error {
	if s.dir == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	f, err := os.Create(s.path(year, month))
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(days); err != nil {
		zw.Close() //nolint:errcheck
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing snapshot: %w", err)
	}
	return f.Close()
}

// Load reads a month of samples. Returns ErrNoSnapshot when absent.
func (s *Store) Load(year int, month int) ([]models.HistoricalDayData, error) {
	if s.dir == "" {
		return nil, ErrNoSnapshot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path(year, month))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	defer zr.Close() //nolint:errcheck

	var days []models.HistoricalDayData
	if err := json.NewDecoder(zr).Decode(&days); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return days, nil
}

// List returns the stored months as "YYYY-MM" keys, sorted ascending.
func (s *Store) List() ([]string, error) {
	if s.dir == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot directory: %w", err)
	}

	var months []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json.gz") {
			continue
		}
		months = append(months, strings.TrimSuffix(e.Name(), ".json.gz"))
	}
	sort.Strings(months)
	return months, nil
}

// Clear removes all snapshots. Refuses to touch directories containing
// anything other than snapshot files.
func (s *Store) Clear() error {
	if s.dir == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading snapshot directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json.gz") {
			return fmt.Errorf("snapshot directory contains unexpected entry %q - refusing to delete", e.Name())
		}
	}

	return os.RemoveAll(s.dir)
}

func (s *Store) path(year int, month int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%04d-%02d.json.gz", year, month))
}
