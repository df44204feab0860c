package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/baterdene/telewatch/internal/models"
)

const snapshotExt = ".json"

// FS implements Store backed by the local file system.
type FS struct {
	root string
}

// NewFS creates a file-system store rooted at the given directory. The
// directory is created on first write, not here.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}

	return &FS{root: abs}, nil
}

func (f *FS) siteDir(siteKey string) string {
	return filepath.Join(f.root, siteKey)
}

func (f *FS) snapshotPath(siteKey, date string) string {
	return filepath.Join(f.siteDir(siteKey), date+snapshotExt)
}

// Save serializes the snapshot to <site_key>/<YYYY-MM-DD>.json, keyed by
// the calendar-day portion of the run timestamp. The last write for a
// given day wins, so re-running the same day never duplicates history.
// The file is written to a temp name and renamed into place so a failed
// write never leaves a half-written snapshot visible to readers.
func (f *FS) Save(snapshot *models.Snapshot) (string, error) {
	if len(snapshot.RunTimestamp) < len("2006-01-02") {
		return "", fmt.Errorf("storage: run timestamp %q is too short for a calendar day", snapshot.RunTimestamp)
	}
	day := snapshot.RunTimestamp[:len("2006-01-02")]

	dir := f.siteDir(snapshot.SiteKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("storage: marshal snapshot: %w", err)
	}

	dest := f.snapshotPath(snapshot.SiteKey, day)

	tmp, err := os.CreateTemp(dir, ".telewatch-tmp-*")
	if err != nil {
		return "", fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return "", fmt.Errorf("storage: write temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("storage: fsync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: close temp: %w", err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return "", fmt.Errorf("storage: rename: %w", err)
	}
	success = true

	return dest, nil
}

// Load reads the snapshot for the exact site and day. A missing file
// returns (nil, nil); a malformed file fails loudly.
func (f *FS) Load(siteKey, date string) (*models.Snapshot, error) {
	return f.read(f.snapshotPath(siteKey, date))
}

// LoadPrevious scans the stored days for the site and returns the one
// with the largest day strictly less than currentDate, or nil when no
// earlier snapshot exists (the first-run case). Lexicographic comparison
// is sufficient because the day format is fixed-width and zero-padded.
func (f *FS) LoadPrevious(siteKey, currentDate string) (*models.Snapshot, error) {
	dates, err := f.ListDates(siteKey)
	if err != nil {
		return nil, err
	}

	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i] < currentDate {
			return f.read(f.snapshotPath(siteKey, dates[i]))
		}
	}

	return nil, nil
}

// ListDates returns every day with a stored snapshot for the site,
// ascending. A site with no history yields an empty list.
func (f *FS) ListDates(siteKey string) ([]string, error) {
	entries, err := os.ReadDir(f.siteDir(siteKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list %s: %w", siteKey, err)
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, snapshotExt))
	}
	sort.Strings(dates)

	return dates, nil
}

func (f *FS) read(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}

	var snapshot models.Snapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", path, err)
	}

	return &snapshot, nil
}
