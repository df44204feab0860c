package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitel_ParseListing_API(t *testing.T) {
	adapter := NewUnitel(discardLogger())

	payload := `{
		"data": [
			{
				"id": 42,
				"title": "New promo",
				"created_at": "2026-02-01",
				"description": "<p>Half price <b>data</b></p>",
				"content": "<div>Full body text here</div>"
			},
			{
				"link": "/unitel/news/second",
				"name": "Second item"
			},
			{
				"note": "record without any link field is skipped"
			}
		]
	}`

	items, err := adapter.ParseListing(t.Context(), payload)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://www.unitel.mn/unitel/news/42", items[0].URL)
	assert.Equal(t, "New promo", items[0].Title)
	assert.Equal(t, "2026-02-01", items[0].Date)
	assert.Equal(t, "Half price data", items[0].Summary)
	assert.Equal(t, "Full body text here", items[0].RawExcerpt)
	assert.NotEmpty(t, items[0].ContentHash)

	assert.Equal(t, "https://www.unitel.mn/unitel/news/second", items[1].URL)
	assert.Equal(t, "Second item", items[1].Title)
}

func TestUnitel_ParseListing_APIBareList(t *testing.T) {
	adapter := NewUnitel(discardLogger())

	payload := `[{"url": "https://www.unitel.mn/unitel/news/a", "title": "A"}]`

	items, err := adapter.ParseListing(t.Context(), payload)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://www.unitel.mn/unitel/news/a", items[0].URL)
}

func TestUnitel_ParseListing_HTMLFallback(t *testing.T) {
	adapter := NewUnitel(discardLogger())

	html := `<html><body>
		<div class="promo-grid">
			<a href="/unitel/news/tariff">Tariff change</a>
			<a href="/unitel/news/tariff">Tariff change duplicate</a>
		</div>
		<a href="https://www.unitel.mn/news/roaming">Roaming offer</a>
	</body></html>`

	items, err := adapter.ParseListing(t.Context(), html)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://www.unitel.mn/unitel/news/tariff", items[0].URL)
	assert.Equal(t, "Tariff change", items[0].Title)
	assert.Equal(t, "https://www.unitel.mn/news/roaming", items[1].URL)
}

func TestUnitelRecordURL(t *testing.T) {
	testCases := []struct {
		name     string
		rec      map[string]any
		expected string
	}{
		{name: "absolute url", rec: map[string]any{"url": "https://www.unitel.mn/x"}, expected: "https://www.unitel.mn/x"},
		{name: "rooted path", rec: map[string]any{"link": "/promo/1"}, expected: "https://www.unitel.mn/promo/1"},
		{name: "numeric id", rec: map[string]any{"id": float64(7)}, expected: "https://www.unitel.mn/unitel/news/7"},
		{name: "slug", rec: map[string]any{"slug": "spring-sale"}, expected: "https://www.unitel.mn/unitel/news/spring-sale"},
		{name: "nothing usable", rec: map[string]any{"note": "x"}, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, unitelRecordURL(tc.rec))
		})
	}
}
