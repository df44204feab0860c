package adapters_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/baterdene/telewatch/internal/adapters"
	"github.com/baterdene/telewatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateItem(t *testing.T) {
	testCases := []struct {
		name        string
		item        models.Item
		expectError bool
	}{
		{name: "valid", item: models.Item{URL: "https://example.com/1", Title: "t"}},
		{name: "empty title is fine", item: models.Item{URL: "https://example.com/1"}},
		{name: "missing url", item: models.Item{Title: "t"}, expectError: true},
		{name: "garbage url", item: models.Item{URL: "not a url at all"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := adapters.ValidateItem(&tc.item)
			if tc.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBuildSnapshot(t *testing.T) {
	site := adapters.Site{Key: "test", Name: "Test", ListingURL: "https://example.com/news"}
	items := []models.Item{
		{URL: "https://example.com/1", Title: "one"},
		{Title: "no url, skipped"},
		{URL: "https://example.com/1", Title: "duplicate, skipped"},
		{URL: "https://example.com/2", Title: "two", Summary: "s"},
	}

	snapshot := adapters.BuildSnapshot(newLogger(), site, "2026-02-10T08:00:00", items)

	assert.Equal(t, "test", snapshot.SiteKey)
	assert.Equal(t, "2026-02-10T08:00:00", snapshot.RunTimestamp)
	assert.Equal(t, site.ListingURL, snapshot.ListingURL)
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, "one", snapshot.Items[0].Title)
	assert.Equal(t, "two", snapshot.Items[1].Title)
	for _, item := range snapshot.Items {
		assert.NotEmpty(t, item.ContentHash)
	}
}

func TestDefaultScreenshotTargets(t *testing.T) {
	site := adapters.Site{Key: "test", Name: "Test Site", ListingURL: "https://example.com/news"}

	var newItems []models.DiffItem
	for i := range 15 {
		newItems = append(newItems, models.DiffItem{URL: "https://example.com/" + string(rune('a'+i)), Title: "item"})
	}

	targets := adapters.DefaultScreenshotTargets(site, newItems)

	// Listing page plus at most nine new items.
	require.Len(t, targets, 10)
	assert.Equal(t, site.ListingURL, targets[0].URL)
	assert.Equal(t, "listing.png", targets[0].Filename)
	assert.Equal(t, "new_0.png", targets[1].Filename)
}

func TestDefaultScreenshotTargets_URLFallbackLabel(t *testing.T) {
	site := adapters.Site{Key: "test", Name: "Test", ListingURL: "https://example.com"}
	targets := adapters.DefaultScreenshotTargets(site, []models.DiffItem{{URL: "https://example.com/1"}})

	require.Len(t, targets, 2)
	assert.Equal(t, "https://example.com/1", targets[1].Label)
}
