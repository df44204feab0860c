package adapters

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	maxTitleLen   = 200
	maxSummaryLen = 500
	maxExcerptLen = 2000
)

var wsRe = regexp.MustCompile(`\s+`)

// absURL makes an href absolute against the site base.
func absURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return baseURL.ResolveReference(ref).String()
}

// usableHref filters out anchors that cannot be item links.
func usableHref(href string) bool {
	return href != "" && href != "#" &&
		!strings.HasPrefix(href, "#") &&
		!strings.HasPrefix(href, "javascript:")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max]
}

// linkTitle pulls a title from a heading inside the link, or falls back
// to the link text.
func linkTitle(sel *goquery.Selection) string {
	heading := sel.Find("h1,h2,h3,h4,h5,h6").First()
	if heading.Length() > 0 {
		return strings.TrimSpace(heading.Text())
	}

	return truncate(strings.TrimSpace(sel.Text()), maxTitleLen)
}

var dateClassRe = regexp.MustCompile(`(?i)date|time|publish`)

// dateNear looks for a date string in the link's parent block.
func dateNear(sel *goquery.Selection) string {
	parent := sel.Parent()
	if parent.Length() == 0 {
		return ""
	}

	var found string
	parent.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if dateClassRe.MatchString(class) {
			found = strings.TrimSpace(s.Text())
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	timeEl := parent.Find("time").First()
	if timeEl.Length() > 0 {
		if dt, ok := timeEl.Attr("datetime"); ok {
			return dt
		}
		return strings.TrimSpace(timeEl.Text())
	}

	return ""
}

// summaryNear extracts a description paragraph from the link's parent.
func summaryNear(sel *goquery.Selection) string {
	parent := sel.Parent()
	if parent.Length() == 0 {
		return ""
	}
	p := parent.Find("p").First()
	if p.Length() == 0 {
		return ""
	}

	return truncate(strings.TrimSpace(p.Text()), maxSummaryLen)
}

// readableExcerpt extracts the main body text of a detail page, preferring
// readability's article extraction and falling back to stripped body text.
func readableExcerpt(rawHTML, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = nil
	}

	if article, err := readability.FromReader(strings.NewReader(rawHTML), parsed); err == nil {
		if text := collapseWS(article.TextContent); text != "" {
			return truncate(text, maxExcerptLen)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc.Find("script,style,nav,header,footer").Remove()

	body := doc.Find("article").First()
	if body.Length() == 0 {
		body = doc.Find(".content").First()
	}
	if body.Length() == 0 {
		body = doc.Find("main").First()
	}
	if body.Length() == 0 {
		body = doc.Find("body").First()
	}

	return truncate(collapseWS(body.Text()), maxExcerptLen)
}

func collapseWS(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}
