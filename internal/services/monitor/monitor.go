// Package monitor orchestrates a full monitoring run: fetch each site's
// listing, snapshot it, diff against the previous snapshot and collect
// the material for the weekly report.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/baterdene/telewatch/internal/adapters"
	"github.com/baterdene/telewatch/internal/diff"
	"github.com/baterdene/telewatch/internal/models"
	"github.com/baterdene/telewatch/internal/repository"
	"github.com/baterdene/telewatch/internal/screenshot"
	"github.com/baterdene/telewatch/internal/storage"
)

// Options control one monitoring run.
type Options struct {
	// Date is the run day in YYYY-MM-DD form. Snapshots saved under this
	// day replace an earlier same-day run.
	Date string
	// NoScreenshots skips page captures.
	NoScreenshots bool
	// NoDetails skips detail-page enrichment, hashing listing data only.
	NoDetails bool
}

// Monitor is the run orchestrator.
type Monitor struct {
	log       *slog.Logger
	store     storage.Store
	capturer  screenshot.Capturer
	runs      repository.Runs
	outputDir string
}

// NewMonitor creates a Monitor. capturer and runs may be nil: without a
// capturer screenshots are skipped, without a runs repository the run
// log is not persisted.
func NewMonitor(
	log *slog.Logger,
	store storage.Store,
	capturer screenshot.Capturer,
	runs repository.Runs,
	outputDir string,
) *Monitor {
	return &Monitor{
		log:       log,
		store:     store,
		capturer:  capturer,
		runs:      runs,
		outputDir: outputDir,
	}
}

// Run processes every adapter and assembles the weekly report. A site
// failure is logged and excluded from the report without aborting the
// remaining sites; Run fails only when every site fails.
func (m *Monitor) Run(ctx context.Context, sites []adapters.Adapter, opts Options) (*models.WeeklyReport, error) {
	const opn = "monitor.Run"
	log := m.log.With("op", opn)

	report := &models.WeeklyReport{
		RunDate:     opts.Date,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
	}

	var failed int
	for _, adapter := range sites {
		siteReport, err := m.ProcessSite(ctx, adapter, opts)
		if err != nil {
			failed++
			log.ErrorContext(ctx, "site processing failed", "site", adapter.Site().Key, "error", err)
			continue
		}
		report.Sites = append(report.Sites, *siteReport)
	}

	if len(sites) > 0 && failed == len(sites) {
		return nil, fmt.Errorf("%s: all %d sites failed", opn, failed)
	}

	return report, nil
}

// ProcessSite runs the full cycle for one site: fetch, parse, enrich,
// snapshot, diff, screenshot, record.
func (m *Monitor) ProcessSite(ctx context.Context, adapter adapters.Adapter, opts Options) (*models.SiteReport, error) {
	const opn = "monitor.ProcessSite"

	site := adapter.Site()
	log := m.log.With("op", opn, "site", site.Key)

	log.InfoContext(ctx, "fetching listing", "url", site.ListingURL)
	raw, err := adapter.FetchListing(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch listing for %s: %w", opn, site.Key, err)
	}

	items, err := adapter.ParseListing(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse listing for %s: %w", opn, site.Key, err)
	}
	log.InfoContext(ctx, "listing parsed", "items", len(items))

	if !opts.NoDetails {
		if enricher, ok := adapter.(adapters.DetailEnricher); ok {
			for i := range items {
				enricher.EnrichDetail(ctx, &items[i])
			}
		}
	}

	runTimestamp := opts.Date + time.Now().UTC().Format("T15:04:05Z")
	snapshot := adapters.BuildSnapshot(m.log, site, runTimestamp, items)

	previous, err := m.store.LoadPrevious(site.Key, opts.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load previous snapshot for %s: %w", opn, site.Key, err)
	}

	path, err := m.store.Save(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save snapshot for %s: %w", opn, site.Key, err)
	}
	log.InfoContext(ctx, "snapshot saved", "path", path)

	siteDiff := diff.Compare(snapshot, previous)
	log.InfoContext(ctx, "diff complete", "new", len(siteDiff.NewItems), "updated", len(siteDiff.UpdatedItems))

	siteReport := &models.SiteReport{
		SiteKey:    site.Key,
		SiteName:   site.Name,
		ListingURL: site.ListingURL,
		APIURL:     site.APIURL,
		Diff:       siteDiff,
	}

	if !opts.NoScreenshots && m.capturer != nil {
		siteReport.Screenshots = m.captureScreenshots(ctx, log, adapter, siteDiff.NewItems)
	}

	m.recordRun(ctx, log, site.Key, opts.Date, siteDiff)

	return siteReport, nil
}

// captureScreenshots captures the site's planned pages and returns refs
// with paths relative to the report output directory. Capture failures
// only cost the report its images.
func (m *Monitor) captureScreenshots(
	ctx context.Context,
	log *slog.Logger,
	adapter adapters.Adapter,
	newItems []models.DiffItem,
) []models.ScreenshotRef {
	targets := adapters.PlanScreenshots(adapter, newItems)
	siteDir := filepath.Join(m.outputDir, "screenshots", adapter.Site().Key)

	refs, err := screenshot.Capture(ctx, m.log, m.capturer, targets, siteDir)
	if err != nil {
		log.WarnContext(ctx, "screenshot capture failed", "error", err)
		return nil
	}

	for i := range refs {
		rel, relErr := filepath.Rel(m.outputDir, refs[i].FilePath)
		if relErr != nil {
			continue
		}
		refs[i].FilePath = filepath.ToSlash(rel)
	}

	return refs
}

// recordRun persists the run outcome, best-effort.
func (m *Monitor) recordRun(ctx context.Context, log *slog.Logger, siteKey, date string, siteDiff models.SiteDiff) {
	if m.runs == nil {
		return
	}

	err := m.runs.RecordRun(ctx, &models.RunRecord{
		SiteKey:      siteKey,
		RunDate:      date,
		NewCount:     len(siteDiff.NewItems),
		UpdatedCount: len(siteDiff.UpdatedItems),
	})
	if err != nil {
		log.WarnContext(ctx, "failed to record run", "error", err)
	}
}
