package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baterdene/telewatch/internal/models"
	"github.com/baterdene/telewatch/internal/repository"
)

// RecordRun upserts the outcome of a site's run. Re-running the same
// (site, date) pair replaces the earlier counts, matching the snapshot
// store's same-day overwrite behavior.
func (r *Repository) RecordRun(ctx context.Context, run *models.RunRecord) error {
	const opn = "repository.sqlite.RecordRun"

	_, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO runs (site_key, run_date, new_count, updated_count) VALUES (?, ?, ?, ?)",
		run.SiteKey, run.RunDate, run.NewCount, run.UpdatedCount)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// GetLastRun returns the most recent recorded run for the site, or
// repository.ErrRunNotFound when the site has never been monitored.
func (r *Repository) GetLastRun(ctx context.Context, siteKey string) (*models.RunRecord, error) {
	const opn = "repository.sqlite.GetLastRun"

	run := &models.RunRecord{SiteKey: siteKey}
	err := r.db.QueryRowContext(ctx,
		"SELECT run_date, new_count, updated_count FROM runs WHERE site_key = ? ORDER BY run_date DESC LIMIT 1",
		siteKey).Scan(&run.RunDate, &run.NewCount, &run.UpdatedCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrRunNotFound
		}
		return nil, fmt.Errorf("%s: failed to get last run: %w", opn, err)
	}

	return run, nil
}

// GetLatestRuns returns the most recent recorded run for every site that
// has one, ordered by site key. Custom sites show up here without any
// configuration: whatever was monitored is whatever is listed.
func (r *Repository) GetLatestRuns(ctx context.Context) ([]models.RunRecord, error) {
	const opn = "repository.sqlite.GetLatestRuns"

	rows, err := r.db.QueryContext(ctx,
		`SELECT site_key, run_date, new_count, updated_count FROM runs AS r
		 WHERE run_date = (SELECT MAX(run_date) FROM runs WHERE site_key = r.site_key)
		 ORDER BY site_key`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		var run models.RunRecord
		if err = rows.Scan(&run.SiteKey, &run.RunDate, &run.NewCount, &run.UpdatedCount); err != nil {
			return nil, fmt.Errorf("%s: failed to scan run: %w", opn, err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return runs, nil
}
