package models

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// Item is one discovered page/resource from a target site.
type Item struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"` // free-form as extracted, never parsed
	Summary     string `json:"summary"`
	ContentHash string `json:"content_hash"`
	RawExcerpt  string `json:"raw_excerpt"`
}

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	wsRe  = regexp.MustCompile(`\s+`)
)

// Normalize strips HTML-like tags, collapses whitespace runs to a single
// space, trims, and lowercases. Used by ComputeHash so that cosmetic
// formatting never changes a fingerprint.
func Normalize(text string) string {
	text = tagRe.ReplaceAllString(text, " ")
	text = wsRe.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// ComputeHash calculates the SHA-256 fingerprint over the normalized
// title, summary and raw excerpt, stores it on the item and returns it.
// URL and Date never affect the hash. The three normalized fields are
// concatenated without a separator; stored snapshots depend on that exact
// byte layout, so it must not change.
func (i *Item) ComputeHash() string {
	blob := Normalize(i.Title) + Normalize(i.Summary) + Normalize(i.RawExcerpt)
	sum := sha256.Sum256([]byte(blob))
	i.ContentHash = hex.EncodeToString(sum[:])

	return i.ContentHash
}
