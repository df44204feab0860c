// Package aireport produces an optional short Mongolian summary of the
// weekly diff using the OpenAI chat completions API. Summarization is
// best-effort: without an API key or on any failure the report simply
// ships without a summary.
package aireport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/baterdene/telewatch/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	maxItemsPerSite = 5
	maxFieldChars   = 220

	requestTimeout = 60 * time.Second
)

// Summarizer calls the chat completions endpoint.
type Summarizer struct {
	log     *slog.Logger
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

// Option customizes a Summarizer.
type Option func(*Summarizer)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(s *Summarizer) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithModel overrides the model name.
func WithModel(m string) Option {
	return func(s *Summarizer) { s.model = m }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Summarizer) { s.client = c }
}

// New returns a Summarizer. An empty apiKey is valid and turns
// Summarize into a no-op.
func New(log *slog.Logger, apiKey string, opts ...Option) *Summarizer {
	s := &Summarizer{
		log:     log,
		client:  &http.Client{Timeout: requestTimeout},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize returns a Mongolian-language summary of the week's changes,
// or "" when no key is configured, nothing changed, or the API call
// fails.
func (s *Summarizer) Summarize(ctx context.Context, report *models.WeeklyReport) string {
	const opn = "aireport.Summarizer.Summarize"

	log := s.log.With("op", opn)

	if s.apiKey == "" {
		log.DebugContext(ctx, "no API key configured, skipping summary")
		return ""
	}

	prompt := buildPrompt(report)
	if prompt == "" {
		log.DebugContext(ctx, "no changes to summarize")
		return ""
	}

	summary, err := s.complete(ctx, prompt)
	if err != nil {
		log.WarnContext(ctx, "summary generation failed", "error", err)
		return ""
	}

	return summary
}

func (s *Summarizer) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: "You summarize telecom operator news-page changes. " +
					"Respond in Mongolian with a short paragraph per site that changed.",
			},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err = json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// buildPrompt flattens the diff into a compact plain-text digest.
// Returns "" when no site changed.
func buildPrompt(report *models.WeeklyReport) string {
	var b strings.Builder
	changed := false

	for _, site := range report.Sites {
		if len(site.Diff.NewItems) == 0 && len(site.Diff.UpdatedItems) == 0 {
			continue
		}
		changed = true

		fmt.Fprintf(&b, "Site: %s (new: %d, updated: %d)\n",
			site.SiteName, len(site.Diff.NewItems), len(site.Diff.UpdatedItems))

		for i, item := range site.Diff.NewItems {
			if i >= maxItemsPerSite {
				break
			}
			fmt.Fprintf(&b, "- NEW: %s | %s\n", clipField(item.Title), clipField(item.Summary))
		}
		for i, item := range site.Diff.UpdatedItems {
			if i >= maxItemsPerSite {
				break
			}
			fmt.Fprintf(&b, "- UPDATED (%s): %s | %s\n",
				strings.Join(item.ChangedFields, ","), clipField(item.Title), clipField(item.Summary))
		}
		b.WriteString("\n")
	}

	if !changed {
		return ""
	}

	return b.String()
}

func clipField(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldChars {
		return s
	}

	return string(runes[:maxFieldChars])
}
