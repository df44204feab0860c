// Package adapters contains the per-site collectors. Each target site
// implements Adapter; detail enrichment and screenshot planning are
// optional capabilities discovered by interface assertion. All parsing is
// best-effort: selector heuristics return possibly-empty item lists
// instead of failing the run.
package adapters

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/baterdene/telewatch/internal/models"
)

// Site is the static metadata of a monitored site.
type Site struct {
	Key        string // stable identifier, e.g. "nt", "unitel"
	Name       string // human-readable name for reports
	ListingURL string // primary listing page used for discovery
	APIURL     string // API endpoint if applicable
}

// Adapter is the required capability set of a site collector.
type Adapter interface {
	Site() Site
	// FetchListing obtains the raw listing payload (HTML or JSON text).
	FetchListing(ctx context.Context) (string, error)
	// ParseListing converts the raw payload into de-duplicated items with
	// their content hashes computed.
	ParseListing(ctx context.Context, raw string) ([]models.Item, error)
}

// DetailEnricher is the optional detail-page capability. EnrichDetail
// fetches the item's page, fills RawExcerpt and recomputes the hash; it
// never fails the run, an unreachable page just leaves the item as-is.
type DetailEnricher interface {
	EnrichDetail(ctx context.Context, item *models.Item)
}

// ScreenshotTarget names one page to capture for the report.
type ScreenshotTarget struct {
	URL      string
	Filename string
	Label    string
}

// ScreenshotPlanner is the optional capability to customize which pages
// get screenshots. Sites without it fall back to DefaultScreenshotTargets.
type ScreenshotPlanner interface {
	ScreenshotTargets(newItems []models.DiffItem) []ScreenshotTarget
}

const defaultNewItemShots = 9

// DefaultScreenshotTargets captures the listing page plus the first few
// new-item detail pages.
func DefaultScreenshotTargets(site Site, newItems []models.DiffItem) []ScreenshotTarget {
	targets := []ScreenshotTarget{{
		URL:      site.ListingURL,
		Filename: "listing.png",
		Label:    site.Name + " - listing page",
	}}
	for idx, item := range newItems {
		if idx >= defaultNewItemShots {
			break
		}
		label := item.Title
		if label == "" {
			label = item.URL
		}
		targets = append(targets, ScreenshotTarget{
			URL:      item.URL,
			Filename: fmt.Sprintf("new_%d.png", idx),
			Label:    label,
		})
	}

	return targets
}

// PlanScreenshots resolves the adapter's screenshot targets, using the
// default plan when the adapter does not customize it.
func PlanScreenshots(adapter Adapter, newItems []models.DiffItem) []ScreenshotTarget {
	if planner, ok := adapter.(ScreenshotPlanner); ok {
		return planner.ScreenshotTargets(newItems)
	}

	return DefaultScreenshotTargets(adapter.Site(), newItems)
}

// ValidateItem rejects collector records that cannot become a snapshot
// entry. URL is the item key and must be a well-formed, non-empty URL;
// everything else may be empty.
func ValidateItem(item *models.Item) error {
	return validation.ValidateStruct(item,
		validation.Field(&item.URL, validation.Required, is.URL),
	)
}

// BuildSnapshot wraps validated collector items into a snapshot for the
// site. Records that fail validation are skipped with a warning; one bad
// record never fails the whole run. Duplicate URLs keep their first
// occurrence, and every kept item gets its hash (re)computed.
func BuildSnapshot(log *slog.Logger, site Site, runTimestamp string, items []models.Item) *models.Snapshot {
	snapshot := &models.Snapshot{
		SiteKey:      site.Key,
		RunTimestamp: runTimestamp,
		ListingURL:   site.ListingURL,
		APIURL:       site.APIURL,
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := ValidateItem(&item); err != nil {
			log.Warn("skipping invalid record", "site", site.Key, "url", item.URL, "error", err)
			continue
		}
		if _, dup := seen[item.URL]; dup {
			continue
		}
		seen[item.URL] = struct{}{}

		item.ComputeHash()
		snapshot.Items = append(snapshot.Items, item)
	}

	return snapshot
}
