package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/baterdene/telewatch/internal/models"
)

const customNewItemShots = 8

var siteKeyRe = regexp.MustCompile(`[^a-z0-9]`)

// Custom monitors any user-provided URL. The page is rendered in a real
// browser so JS-heavy sites work, and every same-host link with
// meaningful text becomes an item.
type Custom struct {
	log      *slog.Logger
	renderer Renderer
	site     Site
	baseURL  string
}

// SiteKeyFromURL derives the stable site key used for an arbitrary
// monitored URL: its lowercased host with every non-alphanumeric run
// replaced by underscores.
func SiteKeyFromURL(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("custom: invalid URL %q", pageURL)
	}

	return siteKeyRe.ReplaceAllString(strings.ToLower(parsed.Host), "_"), nil
}

// NewCustom builds an adapter for an arbitrary URL. The site key is
// derived from the host so snapshots land in a stable directory.
func NewCustom(log *slog.Logger, renderer Renderer, pageURL, name string) (*Custom, error) {
	key, err := SiteKeyFromURL(pageURL)
	if err != nil {
		return nil, err
	}
	parsed, _ := url.Parse(pageURL)

	if name == "" {
		name = parsed.Host
	}

	return &Custom{
		log:      log,
		renderer: renderer,
		baseURL:  parsed.Scheme + "://" + parsed.Host,
		site: Site{
			Key:        key,
			Name:       name,
			ListingURL: pageURL,
		},
	}, nil
}

func (a *Custom) Site() Site { return a.site }

func (a *Custom) FetchListing(ctx context.Context) (string, error) {
	html, err := a.renderer.RenderHTML(ctx, a.site.ListingURL)
	if err != nil {
		return "", fmt.Errorf("custom: fetch listing %s: %w", a.site.ListingURL, err)
	}

	return html, nil
}

func (a *Custom) ParseListing(ctx context.Context, raw string) ([]models.Item, error) {
	if raw == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("custom: listing cannot be parsed as HTML: %w", err)
	}
	doc.Find("script,style,nav,footer").Remove()

	const minTitleLen = 3

	var items []models.Item
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !usableHref(href) {
			return
		}
		pageURL := absURL(a.baseURL, href)
		if _, dup := seen[pageURL]; dup {
			return
		}
		// Same-host links only; the listing page itself is not an item.
		if !strings.HasPrefix(pageURL, a.baseURL) || sameURL(pageURL, a.site.ListingURL) {
			return
		}
		seen[pageURL] = struct{}{}

		title := truncate(strings.TrimSpace(sel.Text()), maxTitleLen)
		if len(title) < minTitleLen {
			return
		}

		item := models.Item{
			URL:     pageURL,
			Title:   title,
			Summary: summaryNear(sel),
		}
		item.ComputeHash()
		items = append(items, item)
	})

	a.log.InfoContext(ctx, "parsed listing", "site", a.site.Key, "items", len(items))

	return items, nil
}

func (a *Custom) EnrichDetail(ctx context.Context, item *models.Item) {
	html, err := a.renderer.RenderHTML(ctx, item.URL)
	if err != nil {
		a.log.WarnContext(ctx, "failed to render detail page", "site", a.site.Key, "url", item.URL, "error", err)
		return
	}

	if excerpt := readableExcerpt(html, item.URL); excerpt != "" {
		item.RawExcerpt = excerpt
	}
	item.ComputeHash()
}

// ScreenshotTargets captures the main page plus up to eight new items.
func (a *Custom) ScreenshotTargets(newItems []models.DiffItem) []ScreenshotTarget {
	targets := []ScreenshotTarget{{
		URL:      a.site.ListingURL,
		Filename: "listing.png",
		Label:    a.site.Name + " - main page",
	}}
	for idx, item := range newItems {
		if idx >= customNewItemShots {
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
