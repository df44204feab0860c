package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/baterdene/telewatch/internal/httpclient"
	"github.com/baterdene/telewatch/internal/models"
)

const (
	unitelBaseURL    = "https://www.unitel.mn"
	unitelListingURL = "https://www.unitel.mn/unitel/"
	unitelAPIURL     = "https://www.unitel.mn/api.php/main/get_news/promo"
)

// Unitel monitors unitel.mn. The promo JSON API is tried first; when it
// is unavailable the listing page HTML is scraped instead. ParseListing
// tells the two payloads apart by their leading byte.
type Unitel struct {
	log    *slog.Logger
	client *httpclient.Client
}

func NewUnitel(log *slog.Logger) *Unitel {
	return &Unitel{log: log, client: httpclient.New(log)}
}

func (a *Unitel) Site() Site {
	return Site{
		Key:        "unitel",
		Name:       "Unitel (Mongolia)",
		ListingURL: unitelListingURL,
		APIURL:     unitelAPIURL,
	}
}

func (a *Unitel) FetchListing(ctx context.Context) (string, error) {
	body, err := a.client.Get(ctx, unitelAPIURL)
	if err == nil && json.Valid(body) {
		a.log.InfoContext(ctx, "API returned data", "site", "unitel")
		return string(body), nil
	}

	a.log.WarnContext(ctx, "API unavailable, falling back to HTML scraping", "site", "unitel", "error", err)
	body, err = a.client.Get(ctx, unitelListingURL)
	if err != nil {
		return "", fmt.Errorf("unitel: fetch listing: %w", err)
	}

	return string(body), nil
}

func (a *Unitel) ParseListing(ctx context.Context, raw string) ([]models.Item, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return a.parseAPI(ctx, trimmed)
	}

	return a.parseHTML(ctx, raw)
}

// parseAPI decodes the promo API payload. The response shape is not
// documented, so records are located under a handful of likely keys and
// fields are matched by name guessing.
func (a *Unitel) parseAPI(ctx context.Context, raw string) ([]models.Item, error) {
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("unitel: decode API payload: %w", err)
	}

	var records []map[string]any
	switch data := payload.(type) {
	case []any:
		records = asRecords(data)
	case map[string]any:
		for _, key := range []string{"data", "items", "result", "news", "list"} {
			if list, ok := data[key].([]any); ok {
				records = asRecords(list)
				break
			}
		}
		if records == nil {
			records = []map[string]any{data}
		}
	}

	var items []models.Item
	seen := make(map[string]struct{})

	for _, rec := range records {
		pageURL := unitelRecordURL(rec)
		if pageURL == "" {
			continue
		}
		if _, dup := seen[pageURL]; dup {
			continue
		}
		seen[pageURL] = struct{}{}

		item := models.Item{
			URL:        pageURL,
			Title:      firstString(rec, "title", "name", "heading"),
			Date:       firstString(rec, "date", "created_at", "published_at", "publish_date"),
			Summary:    truncate(stripMarkup(firstString(rec, "summary", "description", "short_description", "excerpt")), maxSummaryLen),
			RawExcerpt: truncate(stripMarkup(firstString(rec, "content", "body", "text")), maxExcerptLen),
		}
		item.ComputeHash()
		items = append(items, item)
	}

	a.log.InfoContext(ctx, "parsed API listing", "site", "unitel", "items", len(items))

	return items, nil
}

func (a *Unitel) parseHTML(ctx context.Context, raw string) ([]models.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unitel: listing cannot be parsed as HTML: %w", err)
	}

	selectors := []string{
		"a[href*='/news/']",
		"a[href*='/promo/']",
		"[class*=news] a[href]",
		"[class*=promo] a[href]",
		".card a[href]",
		"article a[href]",
	}

	var items []models.Item
	seen := make(map[string]struct{})

	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if !usableHref(href) {
				return
			}
			pageURL := absURL(unitelBaseURL, href)
			if _, dup := seen[pageURL]; dup {
				return
			}
			seen[pageURL] = struct{}{}

			title := truncate(strings.TrimSpace(sel.Text()), maxTitleLen)
			if title == "" {
				title = pageURL
			}
			item := models.Item{URL: pageURL, Title: title}
			item.ComputeHash()
			items = append(items, item)
		})
	}

	a.log.InfoContext(ctx, "parsed HTML listing", "site", "unitel", "items", len(items))

	return items, nil
}

func (a *Unitel) EnrichDetail(ctx context.Context, item *models.Item) {
	body, err := a.client.Get(ctx, item.URL)
	if err != nil {
		a.log.WarnContext(ctx, "failed to fetch detail page", "site", "unitel", "url", item.URL, "error", err)
		return
	}

	if excerpt := readableExcerpt(string(body), item.URL); excerpt != "" {
		item.RawExcerpt = excerpt
	}
	item.ComputeHash()
}

func asRecords(list []any) []map[string]any {
	var records []map[string]any
	for _, entry := range list {
		if rec, ok := entry.(map[string]any); ok {
			records = append(records, rec)
		}
	}

	return records
}

// firstString returns the first non-empty string value among keys.
// Numeric values are accepted too since the API mixes types.
func firstString(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
		}
	}

	return ""
}

// unitelRecordURL builds an absolute URL from whichever link-ish field the
// record carries. Bare slugs and IDs map onto the news path.
func unitelRecordURL(rec map[string]any) string {
	for _, key := range []string{"url", "link", "href", "slug", "id"} {
		val := firstString(rec, key)
		if val == "" {
			continue
		}
		switch {
		case strings.HasPrefix(val, "http"):
			return val
		case strings.HasPrefix(val, "/"):
			return unitelBaseURL + val
		case key == "slug" || key == "id":
			return unitelBaseURL + "/unitel/news/" + val
		default:
			return unitelBaseURL + "/" + val
		}
	}

	return ""
}

// stripMarkup drops embedded HTML from API text fields.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	return collapseWS(doc.Text())
}
