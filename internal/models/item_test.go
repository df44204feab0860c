package models_test

import (
	"testing"

	"github.com/baterdene/telewatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "Hello World", expected: "hello world"},
		{name: "tags stripped", input: "<p>Hello <b>World</b></p>", expected: "hello world"},
		{name: "whitespace collapsed", input: "  Hello \t\n  World  ", expected: "hello world"},
		{name: "empty", input: "", expected: ""},
		{name: "only tags", input: "<br/><hr>", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, models.Normalize(tc.input))
		})
	}
}

func TestComputeHash_Deterministic(t *testing.T) {
	itemA := models.Item{URL: "https://x/1", Title: "Title", Summary: "Sum", RawExcerpt: "Body"}
	itemB := models.Item{URL: "https://x/2", Title: " title ", Summary: "<b>sum</b>", RawExcerpt: "BODY"}

	// Equal normalized content yields equal hashes, regardless of URL.
	assert.Equal(t, itemA.ComputeHash(), itemB.ComputeHash())
}

func TestComputeHash_DateDoesNotAffectHash(t *testing.T) {
	itemA := models.Item{URL: "https://x/1", Title: "T", Date: "2026-01-01"}
	itemB := models.Item{URL: "https://x/1", Title: "T", Date: "2026-02-02"}

	assert.Equal(t, itemA.ComputeHash(), itemB.ComputeHash())
}

func TestComputeHash_FieldChangeChangesHash(t *testing.T) {
	base := models.Item{Title: "t", Summary: "s", RawExcerpt: "r"}
	baseHash := base.ComputeHash()

	changedTitle := models.Item{Title: "t2", Summary: "s", RawExcerpt: "r"}
	changedSummary := models.Item{Title: "t", Summary: "s2", RawExcerpt: "r"}
	changedExcerpt := models.Item{Title: "t", Summary: "s", RawExcerpt: "r2"}

	assert.NotEqual(t, baseHash, changedTitle.ComputeHash())
	assert.NotEqual(t, baseHash, changedSummary.ComputeHash())
	assert.NotEqual(t, baseHash, changedExcerpt.ComputeHash())
}

func TestComputeHash_Idempotent(t *testing.T) {
	item := models.Item{URL: "https://x/1", Title: "Title", Summary: "Sum"}

	first := item.ComputeHash()
	second := item.ComputeHash()

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, second, item.ContentHash)
}

// The concatenation has no separator, so content can shift between adjacent
// fields without changing the hash. This is long-standing behavior that
// stored fingerprints depend on.
func TestComputeHash_CrossFieldShiftCollides(t *testing.T) {
	itemA := models.Item{Title: "ab", Summary: "c"}
	itemB := models.Item{Title: "a", Summary: "bc"}

	assert.Equal(t, itemA.ComputeHash(), itemB.ComputeHash())
}
