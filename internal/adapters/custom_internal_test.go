package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustom_SiteKeyFromHost(t *testing.T) {
	adapter, err := NewCustom(discardLogger(), &fakeRenderer{}, "https://news.example-telecom.mn/press", "")
	require.NoError(t, err)

	site := adapter.Site()
	assert.Equal(t, "news_example_telecom_mn", site.Key)
	assert.Equal(t, "news.example-telecom.mn", site.Name)
	assert.Equal(t, "https://news.example-telecom.mn/press", site.ListingURL)
}

func TestNewCustom_ExplicitName(t *testing.T) {
	adapter, err := NewCustom(discardLogger(), &fakeRenderer{}, "https://example.mn/", "My Site")
	require.NoError(t, err)
	assert.Equal(t, "My Site", adapter.Site().Name)
}

func TestNewCustom_InvalidURL(t *testing.T) {
	_, err := NewCustom(discardLogger(), &fakeRenderer{}, "not-a-url", "")
	require.Error(t, err)
}

func TestCustom_ParseListing(t *testing.T) {
	adapter, err := NewCustom(discardLogger(), &fakeRenderer{}, "https://example.mn/press", "")
	require.NoError(t, err)

	html := `<html><body>
		<nav><a href="/hidden-in-nav">Navigation link</a></nav>
		<div>
			<a href="/press/launch">Launch announcement</a>
			<p>We launched a thing.</p>
		</div>
		<a href="https://other-host.mn/x">External link</a>
		<a href="/press">listing itself</a>
		<a href="/a">x</a>
		<a href="javascript:void(0)">js link</a>
	</body></html>`

	items, err := adapter.ParseListing(t.Context(), html)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.mn/press/launch", items[0].URL)
	assert.Equal(t, "Launch announcement", items[0].Title)
	assert.Equal(t, "We launched a thing.", items[0].Summary)
}

func TestCustom_ParseListing_EmptyDocument(t *testing.T) {
	adapter, err := NewCustom(discardLogger(), &fakeRenderer{}, "https://example.mn/press", "")
	require.NoError(t, err)

	items, err := adapter.ParseListing(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
