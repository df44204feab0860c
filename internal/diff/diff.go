// Package diff classifies the items of a snapshot as new or updated
// relative to the most recent prior snapshot. It is a stateless, pure
// transformation: inputs are never mutated.
package diff

import (
	"strings"

	"github.com/baterdene/telewatch/internal/models"
)

// Compare compares current against previous. previous may be nil on the
// first run for a site, in which case every item is new.
//
// Items whose URL exists in both snapshots with an equal content hash are
// omitted from the result. Items present only in the previous snapshot are
// dropped silently: removals are not reported. Both result lists preserve
// the discovery order of current.Items.
func Compare(current *models.Snapshot, previous *models.Snapshot) models.SiteDiff {
	result := models.SiteDiff{
		SiteKey:    current.SiteKey,
		ListingURL: current.ListingURL,
		APIURL:     current.APIURL,
	}

	if previous == nil {
		for _, item := range current.Items {
			result.NewItems = append(result.NewItems, toDiffItem(item, nil))
		}
		return result
	}

	// Last write wins if a snapshot violates URL uniqueness.
	prevByURL := make(map[string]models.Item, len(previous.Items))
	for _, item := range previous.Items {
		prevByURL[item.URL] = item
	}

	for _, item := range current.Items {
		old, found := prevByURL[item.URL]
		if !found {
			result.NewItems = append(result.NewItems, toDiffItem(item, nil))
			continue
		}
		if item.ContentHash != old.ContentHash {
			result.UpdatedItems = append(result.UpdatedItems, toDiffItem(item, changedFields(old, item)))
		}
	}

	return result
}

func toDiffItem(item models.Item, changed []string) models.DiffItem {
	return models.DiffItem{
		URL:           item.URL,
		Title:         item.Title,
		Date:          item.Date,
		Summary:       item.Summary,
		ChangedFields: changed,
	}
}

// changedFields attributes a hash difference to the raw fields. The
// "content (hash)" fallback covers the case where normalization made the
// hashes diverge while the trimmed raw fields compare equal, so the caller
// always gets a non-empty explanation.
func changedFields(old, updated models.Item) []string {
	var changed []string
	if strings.TrimSpace(old.Title) != strings.TrimSpace(updated.Title) {
		changed = append(changed, "title")
	}
	if strings.TrimSpace(old.Summary) != strings.TrimSpace(updated.Summary) {
		changed = append(changed, "summary")
	}
	if strings.TrimSpace(old.RawExcerpt) != strings.TrimSpace(updated.RawExcerpt) {
		changed = append(changed, "content")
	}
	if len(changed) == 0 {
		changed = append(changed, "content (hash)")
	}

	return changed
}
