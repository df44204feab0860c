package models

// Snapshot is the complete set of items observed for one site in one run.
// It is written once per run and never edited in place.
type Snapshot struct {
	SiteKey      string `json:"site_key"`
	RunTimestamp string `json:"run_timestamp"` // ISO-8601
	ListingURL   string `json:"listing_url"`
	APIURL       string `json:"api_url,omitempty"`
	Items        []Item `json:"items"`
}

// DiffItem is a new or updated item found during diff.
type DiffItem struct {
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Date          string   `json:"date,omitempty"`
	Summary       string   `json:"summary"`
	ChangedFields []string `json:"changed_fields,omitempty"`
}

// SiteDiff is the comparison result for a single site. Items absent from
// the current snapshot are not reported.
type SiteDiff struct {
	SiteKey      string     `json:"site_key"`
	ListingURL   string     `json:"listing_url"`
	APIURL       string     `json:"api_url,omitempty"`
	NewItems     []DiffItem `json:"new_items"`
	UpdatedItems []DiffItem `json:"updated_items"`
}
