// Package screenshot captures report screenshots for a site's pages.
package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/baterdene/telewatch/internal/adapters"
	"github.com/baterdene/telewatch/internal/models"
)

// MaxPerSite caps how many screenshots one site may produce in a run.
const MaxPerSite = 10

// Capturer renders a page and returns PNG bytes. Satisfied by
// browser.Manager.
type Capturer interface {
	Screenshot(ctx context.Context, pageURL string) ([]byte, error)
}

// Capture takes screenshots for the given targets into outputDir. A
// failed target is logged and skipped; the returned refs cover only the
// captures that succeeded.
func Capture(
	ctx context.Context,
	log *slog.Logger,
	capturer Capturer,
	targets []adapters.ScreenshotTarget,
	outputDir string,
) ([]models.ScreenshotRef, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	if len(targets) > MaxPerSite {
		targets = targets[:MaxPerSite]
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", outputDir, err)
	}

	var refs []models.ScreenshotRef
	for _, target := range targets {
		data, err := capturer.Screenshot(ctx, target.URL)
		if err != nil {
			log.WarnContext(ctx, "screenshot failed", "url", target.URL, "error", err)
			continue
		}

		dest := filepath.Join(outputDir, target.Filename)
		if err = os.WriteFile(dest, data, 0o644); err != nil {
			log.WarnContext(ctx, "failed to write screenshot", "path", dest, "error", err)
			continue
		}

		refs = append(refs, models.ScreenshotRef{
			PageURL:  target.URL,
			FilePath: dest,
			Label:    target.Label,
		})
		log.InfoContext(ctx, "screenshot saved", "url", target.URL, "path", dest)
	}

	return refs, nil
}
