package diff_test

import (
	"testing"

	"github.com/baterdene/telewatch/internal/diff"
	"github.com/baterdene/telewatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(url, title, summary, raw string) models.Item {
	item := models.Item{URL: url, Title: title, Summary: summary, RawExcerpt: raw}
	item.ComputeHash()

	return item
}

func newSnapshot(items ...models.Item) *models.Snapshot {
	return &models.Snapshot{
		SiteKey:      "test",
		RunTimestamp: "2026-02-10T08:00:00",
		ListingURL:   "https://example.com/news",
		Items:        items,
	}
}

func TestCompare_FirstRunAllItemsAreNew(t *testing.T) {
	current := newSnapshot(
		newItem("https://example.com/1", "one", "", ""),
		newItem("https://example.com/2", "two", "", ""),
	)

	result := diff.Compare(current, nil)

	require.Len(t, result.NewItems, 2)
	assert.Empty(t, result.UpdatedItems)
	assert.Equal(t, "https://example.com/1", result.NewItems[0].URL)
	assert.Equal(t, "https://example.com/2", result.NewItems[1].URL)
	assert.Equal(t, current.SiteKey, result.SiteKey)
	assert.Equal(t, current.ListingURL, result.ListingURL)
}

func TestCompare_IdenticalSnapshotsYieldNoChanges(t *testing.T) {
	items := []models.Item{
		newItem("https://example.com/1", "one", "s", ""),
		newItem("https://example.com/2", "two", "s", ""),
	}
	result := diff.Compare(newSnapshot(items...), newSnapshot(items...))

	assert.Empty(t, result.NewItems)
	assert.Empty(t, result.UpdatedItems)
}

func TestCompare_NewItemDetected(t *testing.T) {
	prev := newSnapshot(newItem("https://example.com/1", "one", "s", ""))
	curr := newSnapshot(
		newItem("https://example.com/1", "one", "s", ""),
		newItem("https://example.com/2", "two", "s", ""),
	)

	result := diff.Compare(curr, prev)

	require.Len(t, result.NewItems, 1)
	assert.Equal(t, "https://example.com/2", result.NewItems[0].URL)
	assert.Empty(t, result.UpdatedItems)
}

func TestCompare_ChangedFieldAttribution(t *testing.T) {
	testCases := []struct {
		name     string
		old      models.Item
		updated  models.Item
		expected []string
	}{
		{
			name:     "title changed",
			old:      newItem("https://x/1", "old title", "s", "r"),
			updated:  newItem("https://x/1", "new title", "s", "r"),
			expected: []string{"title"},
		},
		{
			name:     "summary changed",
			old:      newItem("https://x/1", "t", "old summary", "r"),
			updated:  newItem("https://x/1", "t", "new summary", "r"),
			expected: []string{"summary"},
		},
		{
			name:     "excerpt changed",
			old:      newItem("https://x/1", "t", "s", "old body"),
			updated:  newItem("https://x/1", "t", "s", "new body"),
			expected: []string{"content"},
		},
		{
			name:     "multiple fields changed",
			old:      newItem("https://x/1", "old", "old", "r"),
			updated:  newItem("https://x/1", "new", "new", "r"),
			expected: []string{"title", "summary"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := diff.Compare(newSnapshot(tc.updated), newSnapshot(tc.old))

			require.Len(t, result.UpdatedItems, 1)
			assert.Empty(t, result.NewItems)
			assert.Equal(t, tc.expected, result.UpdatedItems[0].ChangedFields)
		})
	}
}

// When the trimmed raw fields compare equal but the stored hashes differ
// (a previous capture hashed under diverging normalization rules), the
// attribution falls back to "content (hash)" so the result is never empty.
func TestCompare_HashFallbackAttribution(t *testing.T) {
	old := models.Item{URL: "https://x/1", Title: "t", Summary: "s"}
	old.ContentHash = "0000000000000000000000000000000000000000000000000000000000000000"

	updated := newItem("https://x/1", "t", "s", "")

	result := diff.Compare(newSnapshot(updated), newSnapshot(old))

	require.Len(t, result.UpdatedItems, 1)
	assert.Equal(t, []string{"content (hash)"}, result.UpdatedItems[0].ChangedFields)
}

func TestCompare_RemovedItemsAreNotReported(t *testing.T) {
	prev := newSnapshot(
		newItem("https://example.com/1", "kept", "s", ""),
		newItem("https://example.com/2", "removed", "s", ""),
	)
	curr := newSnapshot(newItem("https://example.com/1", "kept", "s", ""))

	result := diff.Compare(curr, prev)

	assert.Empty(t, result.NewItems)
	assert.Empty(t, result.UpdatedItems)
}

func TestCompare_MixedScenario(t *testing.T) {
	prevItem := newItem("https://x/1", "A", "s1", "")
	prev := newSnapshot(prevItem)
	curr := newSnapshot(
		newItem("https://x/1", "A", "s2", ""),
		newItem("https://x/2", "B", "", ""),
	)

	result := diff.Compare(curr, prev)

	require.Len(t, result.NewItems, 1)
	assert.Equal(t, "https://x/2", result.NewItems[0].URL)
	require.Len(t, result.UpdatedItems, 1)
	assert.Equal(t, "https://x/1", result.UpdatedItems[0].URL)
	assert.Equal(t, []string{"summary"}, result.UpdatedItems[0].ChangedFields)
}

func TestCompare_OrderPreserved(t *testing.T) {
	curr := newSnapshot(
		newItem("https://x/3", "c", "", ""),
		newItem("https://x/1", "a", "", ""),
		newItem("https://x/2", "b", "", ""),
	)

	result := diff.Compare(curr, nil)

	require.Len(t, result.NewItems, 3)
	assert.Equal(t, "https://x/3", result.NewItems[0].URL)
	assert.Equal(t, "https://x/1", result.NewItems[1].URL)
	assert.Equal(t, "https://x/2", result.NewItems[2].URL)
}

func TestCompare_DuplicatePreviousURLsLastWriteWins(t *testing.T) {
	first := newItem("https://x/1", "first", "", "")
	second := newItem("https://x/1", "second", "", "")
	prev := newSnapshot(first, second)
	curr := newSnapshot(newItem("https://x/1", "second", "", ""))

	result := diff.Compare(curr, prev)

	assert.Empty(t, result.NewItems)
	assert.Empty(t, result.UpdatedItems)
}
