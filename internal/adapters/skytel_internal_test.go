package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer returns canned HTML per URL.
type fakeRenderer struct {
	pages map[string]string
	err   error
}

func (f *fakeRenderer) RenderHTML(_ context.Context, pageURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return f.pages[pageURL], nil
}

func TestSkytel_FetchListing_ArchiveFirst(t *testing.T) {
	archiveHTML := "<html>" + strings.Repeat("a", 600) + "</html>"
	renderer := &fakeRenderer{pages: map[string]string{
		skytelArchiveURL: archiveHTML,
		skytelListingURL: "<html>main</html>",
	}}
	adapter := NewSkytel(discardLogger(), renderer)

	raw, err := adapter.FetchListing(t.Context())
	require.NoError(t, err)
	assert.Equal(t, archiveHTML, raw)
}

func TestSkytel_FetchListing_FallsBackToMainPage(t *testing.T) {
	mainHTML := "<html>" + strings.Repeat("b", 600) + "</html>"
	renderer := &fakeRenderer{pages: map[string]string{
		skytelArchiveURL: "", // archive render produced nothing usable
		skytelListingURL: mainHTML,
	}}
	adapter := NewSkytel(discardLogger(), renderer)

	raw, err := adapter.FetchListing(t.Context())
	require.NoError(t, err)
	assert.Equal(t, mainHTML, raw)
}

func TestSkytel_FetchListing_AllPagesFail(t *testing.T) {
	adapter := NewSkytel(discardLogger(), &fakeRenderer{err: errors.New("chrome crashed")})

	_, err := adapter.FetchListing(t.Context())
	require.Error(t, err)
}

func TestSkytel_ParseListing(t *testing.T) {
	adapter := NewSkytel(discardLogger(), &fakeRenderer{})

	html := `<html><body>
		<div class="news-card">
			<a href="/news/123"><h2>Winter promo</h2></a>
			<p>Half price handsets.</p>
		</div>
		<a href="/news/archiveNew">archive itself, skipped</a>
		<a href="https://www.skytel.mn/skytel">listing itself, skipped</a>
	</body></html>`

	items, err := adapter.ParseListing(t.Context(), html)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://www.skytel.mn/news/123", items[0].URL)
	assert.Equal(t, "Winter promo", items[0].Title)
	assert.Equal(t, "Half price handsets.", items[0].Summary)
}

func TestSkytel_ScreenshotTargetsIncludeArchive(t *testing.T) {
	adapter := NewSkytel(discardLogger(), &fakeRenderer{})

	targets := adapter.ScreenshotTargets(nil)

	require.Len(t, targets, 2)
	assert.Equal(t, skytelListingURL, targets[0].URL)
	assert.Equal(t, skytelArchiveURL, targets[1].URL)
}
