package models

// ScreenshotRef points at a captured screenshot file.
type ScreenshotRef struct {
	PageURL  string `json:"page_url"`
	FilePath string `json:"file_path"`
	Label    string `json:"label"`
}

// SiteReport is the per-site section of the weekly report.
type SiteReport struct {
	SiteKey     string          `json:"site_key"`
	SiteName    string          `json:"site_name"`
	ListingURL  string          `json:"listing_url"`
	APIURL      string          `json:"api_url,omitempty"`
	Diff        SiteDiff        `json:"diff"`
	Screenshots []ScreenshotRef `json:"screenshots"`
}

// WeeklyReport is the full report across all monitored sites.
type WeeklyReport struct {
	RunDate     string       `json:"run_date"`
	GeneratedAt string       `json:"generated_at"`
	Sites       []SiteReport `json:"sites"`
	AISummary   string       `json:"ai_summary,omitempty"`
}
