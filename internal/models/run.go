package models

// RunRecord is a persisted summary of one monitoring run for a site.
type RunRecord struct {
	SiteKey      string `json:"site_key"`
	RunDate      string `json:"run_date"`
	NewCount     int    `json:"new_count"`
	UpdatedCount int    `json:"updated_count"`
}
