// Package report renders the weekly change report as Markdown and HTML
// and prepares the HTML variant used for email delivery.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/baterdene/telewatch/internal/models"
)

const (
	markdownFilename = "weekly_report.md"
	htmlFilename     = "weekly_report.html"
	indexFilename    = "index.html"

	summaryClip = 300
)

// RenderMarkdown produces the Markdown report.
func RenderMarkdown(report *models.WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Website Change Report - %s\n", report.RunDate)
	fmt.Fprintf(&b, "Generated at: %s\n\n", report.GeneratedAt)

	if report.AISummary != "" {
		b.WriteString("## Summary\n")
		b.WriteString(report.AISummary + "\n\n")
	}

	for _, site := range report.Sites {
		fmt.Fprintf(&b, "## %s\n", site.SiteName)
		fmt.Fprintf(&b, "**New items:** %d | **Updated items:** %d\n\n",
			len(site.Diff.NewItems), len(site.Diff.UpdatedItems))

		b.WriteString("### Source pages\n")
		fmt.Fprintf(&b, "- Listing URL: %s\n", site.ListingURL)
		if site.APIURL != "" {
			fmt.Fprintf(&b, "- API endpoint: %s\n", site.APIURL)
		}
		b.WriteString("\n")

		if len(site.Diff.NewItems) > 0 {
			b.WriteString("### New items\n")
			for _, item := range site.Diff.NewItems {
				datePart := ""
				if item.Date != "" {
					datePart = fmt.Sprintf(" (%s)", item.Date)
				}
				fmt.Fprintf(&b, "- **%s**%s\n  %s\n", item.Title, datePart, item.URL)
				if item.Summary != "" {
					fmt.Fprintf(&b, "  > %s\n", clip(item.Summary, summaryClip))
				}
			}
			b.WriteString("\n")
		}

		if len(site.Diff.UpdatedItems) > 0 {
			b.WriteString("### Updated items\n")
			for _, item := range site.Diff.UpdatedItems {
				changed := strings.Join(item.ChangedFields, ", ")
				if changed == "" {
					changed = "content"
				}
				fmt.Fprintf(&b, "- **%s** - changed: %s\n  %s\n", item.Title, changed, item.URL)
				if item.Summary != "" {
					fmt.Fprintf(&b, "  > %s\n", clip(item.Summary, summaryClip))
				}
			}
			b.WriteString("\n")
		}

		if len(site.Diff.NewItems) == 0 && len(site.Diff.UpdatedItems) == 0 {
			b.WriteString("_No changes detected since last run._\n\n")
		}

		if len(site.Screenshots) > 0 {
			b.WriteString("### Screenshots\n")
			for _, ss := range site.Screenshots {
				fmt.Fprintf(&b, "- [%s](%s)\n  Page URL: %s\n  ![%s](%s)\n",
					ss.Label, ss.FilePath, ss.PageURL, ss.Label, ss.FilePath)
			}
			b.WriteString("\n")
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

// RenderHTML renders the HTML report.
func RenderHTML(report *models.WeeklyReport) (string, error) {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, report); err != nil {
		return "", fmt.Errorf("report: render html: %w", err)
	}

	return b.String(), nil
}

// WriteReports writes the Markdown and HTML reports into outputDir and
// returns their paths. The HTML is duplicated as index.html so a static
// host serves it at "/".
func WriteReports(report *models.WeeklyReport, outputDir string) (mdPath, htmlPath string, err error) {
	if err = os.MkdirAll(outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("report: mkdir %s: %w", outputDir, err)
	}

	mdPath = filepath.Join(outputDir, markdownFilename)
	if err = os.WriteFile(mdPath, []byte(RenderMarkdown(report)), 0o644); err != nil {
		return "", "", fmt.Errorf("report: write markdown: %w", err)
	}

	html, err := RenderHTML(report)
	if err != nil {
		return "", "", err
	}

	htmlPath = filepath.Join(outputDir, htmlFilename)
	if err = os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", "", fmt.Errorf("report: write html: %w", err)
	}
	if err = os.WriteFile(filepath.Join(outputDir, indexFilename), []byte(html), 0o644); err != nil {
		return "", "", fmt.Errorf("report: write index: %w", err)
	}

	return mdPath, htmlPath, nil
}

var screenshotSrcRe = regexp.MustCompile(`src="(screenshots/[^"]+)"`)

// RenderHTMLForEmail renders the HTML report with screenshot images
// rewritten to cid: references for inline embedding. The returned map
// links each Content-ID to the absolute image path under outputDir.
// Images missing from disk keep their original reference.
func RenderHTMLForEmail(report *models.WeeklyReport, outputDir string) (string, map[string]string, error) {
	html, err := RenderHTML(report)
	if err != nil {
		return "", nil, err
	}

	cidMap := make(map[string]string)
	counter := 0

	html = screenshotSrcRe.ReplaceAllStringFunc(html, func(match string) string {
		rel := screenshotSrcRe.FindStringSubmatch(match)[1]
		abs := filepath.Join(outputDir, filepath.FromSlash(rel))
		if _, statErr := os.Stat(abs); statErr != nil {
			return match
		}
		cid := fmt.Sprintf("img%d%s", counter, filepath.Ext(rel))
		counter++
		cidMap[cid] = abs

		return fmt.Sprintf("src=%q", "cid:"+cid)
	})

	return html, cidMap, nil
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}

var htmlTmpl = template.Must(template.New("weekly_report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Weekly Website Change Report - {{.RunDate}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 900px; color: #222; }
  h1 { border-bottom: 2px solid #0b5394; padding-bottom: .3rem; }
  h2 { color: #0b5394; margin-top: 2rem; }
  .counts { color: #555; }
  .item { margin: .6rem 0; }
  .item .title { font-weight: 600; }
  .item .date { color: #777; font-size: .9em; }
  .item .summary { color: #444; margin-left: 1rem; }
  .changed { color: #a35200; font-size: .9em; }
  .screenshot img { max-width: 100%; border: 1px solid #ddd; margin: .5rem 0; }
  .nochange { color: #777; font-style: italic; }
  hr { border: none; border-top: 1px solid #ddd; margin: 2rem 0; }
</style>
</head>
<body>
<h1>Weekly Website Change Report - {{.RunDate}}</h1>
<p class="counts">Generated at: {{.GeneratedAt}}</p>
{{if .AISummary}}<h2>Summary</h2><p>{{.AISummary}}</p>{{end}}
{{range .Sites}}
<h2>{{.SiteName}}</h2>
<p class="counts"><b>New items:</b> {{len .Diff.NewItems}} | <b>Updated items:</b> {{len .Diff.UpdatedItems}}</p>
<p>Listing: <a href="{{.ListingURL}}">{{.ListingURL}}</a>{{if .APIURL}}<br>API: <a href="{{.APIURL}}">{{.APIURL}}</a>{{end}}</p>
{{if .Diff.NewItems}}
<h3>New items</h3>
{{range .Diff.NewItems}}
<div class="item">
  <span class="title"><a href="{{.URL}}">{{.Title}}</a></span>
  {{if .Date}}<span class="date">({{.Date}})</span>{{end}}
  {{if .Summary}}<div class="summary">{{.Summary}}</div>{{end}}
</div>
{{end}}
{{end}}
{{if .Diff.UpdatedItems}}
<h3>Updated items</h3>
{{range .Diff.UpdatedItems}}
<div class="item">
  <span class="title"><a href="{{.URL}}">{{.Title}}</a></span>
  <span class="changed">changed: {{range $i, $f := .ChangedFields}}{{if $i}}, {{end}}{{$f}}{{end}}</span>
  {{if .Summary}}<div class="summary">{{.Summary}}</div>{{end}}
</div>
{{end}}
{{end}}
{{if and (not .Diff.NewItems) (not .Diff.UpdatedItems)}}
<p class="nochange">No changes detected since last run.</p>
{{end}}
{{range .Screenshots}}
<div class="screenshot">
  <p>{{.Label}} - <a href="{{.PageURL}}">{{.PageURL}}</a></p>
  <img src="{{.FilePath}}" alt="{{.Label}}">
</div>
{{end}}
<hr>
{{end}}
</body>
</html>
`))
