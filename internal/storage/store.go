// Package storage persists snapshots as JSON files, one per site per
// calendar day: <root>/<site_key>/<YYYY-MM-DD>.json.
package storage

import "github.com/baterdene/telewatch/internal/models"

// Store is the snapshot persistence abstraction.
type Store interface {
	// Save writes the snapshot for its site and calendar day, overwriting
	// any snapshot already written for that day. Returns the location of
	// the stored record.
	Save(snapshot *models.Snapshot) (string, error)
	// Load returns the snapshot stored for the exact site and day, or nil
	// when none exists. Absence is not an error.
	Load(siteKey, date string) (*models.Snapshot, error)
	// LoadPrevious returns the snapshot with the largest day strictly
	// before currentDate, or nil when the site has no earlier history.
	LoadPrevious(siteKey, currentDate string) (*models.Snapshot, error)
	// ListDates returns every day with a stored snapshot, ascending.
	ListDates(siteKey string) ([]string, error)
}
