package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/baterdene/telewatch/internal/httpclient"
	"github.com/baterdene/telewatch/internal/models"
)

const (
	ntBaseURL    = "https://www.ntplc.co.th"
	ntListingURL = "https://www.ntplc.co.th/en/news"
)

// NT monitors the National Telecom Thailand news listing. The page is
// server-rendered; an Accept-Language header keeps the content English.
type NT struct {
	log    *slog.Logger
	client *httpclient.Client
}

// NewNT creates the NT adapter with its own English-preferring client.
func NewNT(log *slog.Logger) *NT {
	return &NT{
		log:    log,
		client: httpclient.New(log, httpclient.WithAcceptLanguage("en")),
	}
}

func (a *NT) Site() Site {
	return Site{
		Key:        "nt",
		Name:       "NT (National Telecom Thailand)",
		ListingURL: ntListingURL,
	}
}

func (a *NT) FetchListing(ctx context.Context) (string, error) {
	body, err := a.client.Get(ctx, ntListingURL)
	if err != nil {
		return "", fmt.Errorf("nt: fetch listing: %w", err)
	}

	return string(body), nil
}

// ParseListing scans the news page with a set of card/article selectors
// and falls back to a broad anchor scan when none of them match. The
// selectors are best-effort and refined against the live page.
func (a *NT) ParseListing(ctx context.Context, raw string) ([]models.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("nt: listing cannot be parsed as HTML: %w", err)
	}

	selectors := []string{
		"article a[href]",
		".card a[href]",
		".news-item a[href]",
		".news-list a[href]",
		"[class*=news] a[href]",
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
			pageURL := absURL(ntBaseURL, href)
			if _, dup := seen[pageURL]; dup {
				return
			}
			if !ntNewsURL(pageURL) || sameURL(pageURL, ntListingURL) {
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
		a.log.WarnContext(ctx, "primary selectors yielded 0 items, falling back to broad scan", "site", "nt")
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			pageURL := absURL(ntBaseURL, href)
			if _, dup := seen[pageURL]; dup {
				return
			}
			if !ntNewsURL(pageURL) || sameURL(pageURL, ntListingURL) {
				return
			}
			seen[pageURL] = struct{}{}

			title := strings.TrimSpace(sel.Text())
			if title == "" {
				title = pageURL
			}
			item := models.Item{URL: pageURL, Title: title}
			item.ComputeHash()
			items = append(items, item)
		})
	}

	a.log.InfoContext(ctx, "parsed listing", "site", "nt", "items", len(items))

	return items, nil
}

// EnrichDetail fetches the detail page (forced onto the /en/ path) and
// fills the raw excerpt. Failures leave the item as parsed from the
// listing.
func (a *NT) EnrichDetail(ctx context.Context, item *models.Item) {
	body, err := a.client.Get(ctx, ntEnglishPath(item.URL))
	if err != nil {
		a.log.WarnContext(ctx, "failed to fetch detail page", "site", "nt", "url", item.URL, "error", err)
		return
	}

	if excerpt := readableExcerpt(string(body), item.URL); excerpt != "" {
		item.RawExcerpt = excerpt
	}
	item.ComputeHash()
}

func ntNewsURL(pageURL string) bool {
	return strings.Contains(pageURL, "/news/") || strings.Contains(pageURL, "/en/news")
}

// ntEnglishPath rewrites an NT URL to the /en/ path when it isn't already.
func ntEnglishPath(pageURL string) string {
	if strings.Contains(pageURL, "/en/") {
		return pageURL
	}
	if strings.HasPrefix(pageURL, ntBaseURL) {
		path := strings.TrimPrefix(pageURL, ntBaseURL)
		if strings.HasPrefix(path, "/") {
			return ntBaseURL + "/en" + path
		}
	}

	return pageURL
}

func sameURL(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}
