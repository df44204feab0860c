package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/baterdene/telewatch/internal/models"
)

const (
	skytelBaseURL    = "https://www.skytel.mn"
	skytelListingURL = "https://www.skytel.mn/skytel"
	skytelArchiveURL = "https://www.skytel.mn/news/archiveNew"
)

// Renderer produces post-JavaScript HTML for a page. Satisfied by
// browser.Manager; kept narrow so adapters are testable without Chrome.
type Renderer interface {
	RenderHTML(ctx context.Context, pageURL string) (string, error)
}

// Skytel monitors skytel.mn, which renders client-side, so the listing
// and detail pages go through a real browser.
type Skytel struct {
	log      *slog.Logger
	renderer Renderer
}

func NewSkytel(log *slog.Logger, renderer Renderer) *Skytel {
	return &Skytel{log: log, renderer: renderer}
}

func (a *Skytel) Site() Site {
	return Site{
		Key:        "skytel",
		Name:       "Skytel (Mongolia)",
		ListingURL: skytelListingURL,
	}
}

// FetchListing renders the news archive, falling back to the main page
// when the archive yields no usable document.
func (a *Skytel) FetchListing(ctx context.Context) (string, error) {
	const minUsableHTML = 500

	var lastErr error
	for _, pageURL := range []string{skytelArchiveURL, skytelListingURL} {
		html, err := a.renderer.RenderHTML(ctx, pageURL)
		if err != nil {
			a.log.WarnContext(ctx, "page render failed, trying next URL", "site", "skytel", "url", pageURL, "error", err)
			lastErr = err
			continue
		}
		if len(html) > minUsableHTML {
			return html, nil
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("skytel: fetch listing: %w", lastErr)
	}

	return "", fmt.Errorf("skytel: fetch listing: no usable document")
}

func (a *Skytel) ParseListing(ctx context.Context, raw string) ([]models.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("skytel: listing cannot be parsed as HTML: %w", err)
	}

	selectors := []string{
		"a[href*='/news/']",
		"a[href*='/skytel/']",
		"[class*=news] a[href]",
		"[class*=promo] a[href]",
		".card a[href]",
		"article a[href]",
		"[class*=post] a[href]",
		"[class*=article] a[href]",
	}

	var items []models.Item
	seen := make(map[string]struct{})

	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if !usableHref(href) {
				return
			}
			pageURL := absURL(skytelBaseURL, href)
			if _, dup := seen[pageURL]; dup {
				return
			}
			if sameURL(pageURL, skytelListingURL) || sameURL(pageURL, skytelArchiveURL) {
				return
			}
			seen[pageURL] = struct{}{}

			item := models.Item{
				URL:     pageURL,
				Title:   linkTitle(sel),
				Date:    dateNear(sel),
				Summary: summaryNear(sel),
			}
			item.ComputeHash()
			items = append(items, item)
		})
	}

	if len(items) == 0 {
		a.log.WarnContext(ctx, "primary selectors yielded 0 items, broad scan", "site", "skytel")
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			pageURL := absURL(skytelBaseURL, href)
			if _, dup := seen[pageURL]; dup {
				return
			}
			if !strings.HasPrefix(pageURL, skytelBaseURL) {
				return
			}
			if sameURL(pageURL, skytelListingURL) || sameURL(pageURL, skytelArchiveURL) {
				return
			}
			seen[pageURL] = struct{}{}

			title := truncate(strings.TrimSpace(sel.Text()), maxTitleLen)
			if len(title) < 3 {
				return
			}
			item := models.Item{URL: pageURL, Title: title}
			item.ComputeHash()
			items = append(items, item)
		})
	}

	a.log.InfoContext(ctx, "parsed listing", "site", "skytel", "items", len(items))

	return items, nil
}

func (a *Skytel) EnrichDetail(ctx context.Context, item *models.Item) {
	html, err := a.renderer.RenderHTML(ctx, item.URL)
	if err != nil {
		a.log.WarnContext(ctx, "failed to render detail page", "site", "skytel", "url", item.URL, "error", err)
		return
	}

	if excerpt := readableExcerpt(html, item.URL); excerpt != "" {
		item.RawExcerpt = excerpt
	}
	item.ComputeHash()
}

// ScreenshotTargets adds the archive page alongside the default plan.
func (a *Skytel) ScreenshotTargets(newItems []models.DiffItem) []ScreenshotTarget {
	targets := DefaultScreenshotTargets(a.Site(), newItems)
	targets = append(targets, ScreenshotTarget{
		URL:      skytelArchiveURL,
		Filename: "archive.png",
		Label:    "Skytel (Mongolia) - news archive",
	})

	return targets
}
