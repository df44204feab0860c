package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baterdene/telewatch/internal/models"
	"github.com/baterdene/telewatch/internal/report"
)

func sampleReport() *models.WeeklyReport {
	return &models.WeeklyReport{
		RunDate:     "2026-02-09",
		GeneratedAt: "2026-02-09 06:00 UTC",
		Sites: []models.SiteReport{
			{
				SiteKey:    "nt",
				SiteName:   "NT News",
				ListingURL: "https://nt.example.mn/en/news",
				Diff: models.SiteDiff{
					SiteKey:    "nt",
					ListingURL: "https://nt.example.mn/en/news",
					NewItems: []models.DiffItem{
						{
							URL:     "https://nt.example.mn/en/news/5g-launch",
							Title:   "5G launch",
							Date:    "2026-02-08",
							Summary: "Commercial 5G service is now live.",
						},
					},
					UpdatedItems: []models.DiffItem{
						{
							URL:           "https://nt.example.mn/en/news/roaming",
							Title:         "Roaming update",
							Summary:       "Revised roaming tariffs.",
							ChangedFields: []string{"summary"},
						},
					},
				},
				Screenshots: []models.ScreenshotRef{
					{
						PageURL:  "https://nt.example.mn/en/news",
						FilePath: "screenshots/nt/listing.png",
						Label:    "News listing",
					},
				},
			},
			{
				SiteKey:    "skytel",
				SiteName:   "Skytel",
				ListingURL: "https://sky.example.mn/news",
				APIURL:     "https://sky.example.mn/api/news",
				Diff: models.SiteDiff{
					SiteKey:    "skytel",
					ListingURL: "https://sky.example.mn/news",
				},
			},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	md := report.RenderMarkdown(sampleReport())

	assert.Contains(t, md, "# Weekly Website Change Report - 2026-02-09")
	assert.Contains(t, md, "## NT News")
	assert.Contains(t, md, "**New items:** 1 | **Updated items:** 1")
	assert.Contains(t, md, "**5G launch** (2026-02-08)")
	assert.Contains(t, md, "**Roaming update** - changed: summary")
	assert.Contains(t, md, "![News listing](screenshots/nt/listing.png)")
	assert.Contains(t, md, "- API endpoint: https://sky.example.mn/api/news")
	assert.Contains(t, md, "_No changes detected since last run._")
}

func TestRenderMarkdown_AISummary(t *testing.T) {
	t.Parallel()

	rep := sampleReport()
	rep.AISummary = "Долоо хоногийн тойм."

	md := report.RenderMarkdown(rep)

	assert.Contains(t, md, "## Summary\nДолоо хоногийн тойм.")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	html, err := report.RenderHTML(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, html, "<h2>NT News</h2>")
	assert.Contains(t, html, `<a href="https://nt.example.mn/en/news/5g-launch">5G launch</a>`)
	assert.Contains(t, html, "changed: summary")
	assert.Contains(t, html, `<img src="screenshots/nt/listing.png" alt="News listing">`)
	assert.Contains(t, html, "No changes detected since last run.")
}

func TestRenderHTML_EscapesMarkup(t *testing.T) {
	t.Parallel()

	rep := sampleReport()
	rep.Sites[0].Diff.NewItems[0].Title = `<script>alert("x")</script>`

	html, err := report.RenderHTML(rep)
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestWriteReports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	mdPath, htmlPath, err := report.WriteReports(sampleReport(), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "weekly_report.md"), mdPath)
	assert.Equal(t, filepath.Join(dir, "weekly_report.html"), htmlPath)

	htmlData, err := os.ReadFile(htmlPath)
	require.NoError(t, err)

	indexData, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, htmlData, indexData)
}

func TestRenderHTMLForEmail(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ssDir := filepath.Join(dir, "screenshots", "nt")
	require.NoError(t, os.MkdirAll(ssDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ssDir, "listing.png"), []byte("png"), 0o644))

	html, cids, err := report.RenderHTMLForEmail(sampleReport(), dir)
	require.NoError(t, err)

	assert.Contains(t, html, `src="cid:img0.png"`)
	assert.NotContains(t, html, `src="screenshots/nt/listing.png"`)
	require.Len(t, cids, 1)
	assert.Equal(t, filepath.Join(ssDir, "listing.png"), cids["img0.png"])
}

func TestRenderHTMLForEmail_MissingImageKeepsReference(t *testing.T) {
	t.Parallel()

	html, cids, err := report.RenderHTMLForEmail(sampleReport(), t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, html, `src="screenshots/nt/listing.png"`)
	assert.Empty(t, cids)

	if strings.Contains(html, "cid:") {
		t.Fatalf("unexpected cid reference in %q", html)
	}
}
