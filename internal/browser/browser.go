// Package browser manages a headless Chrome instance via Rod and exposes
// the two operations the monitor needs: rendered-HTML retrieval for
// JS-heavy sites and full-page screenshot capture.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

const (
	navigateTimeout = 30 * time.Second
	settleDelay     = 1500 * time.Millisecond
)

// Manager owns the Chrome lifecycle. Create with NewManager, launch
// lazily on first use, and Close when the run finishes.
type Manager struct {
	log     *slog.Logger
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewManager creates a Manager; Chrome is not launched until needed.
func NewManager(log *slog.Logger) *Manager {
	return &Manager{log: log}
}

// ensureBrowser launches and connects Chrome on first call.
func (m *Manager) ensureBrowser() (*rod.Browser, error) {
	if m.browser != nil {
		return m.browser, nil
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled")

	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}
	m.lnch = l

	b := rod.New().ControlURL(wsURL)
	if err = b.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	m.browser = b
	m.log.Info("browser: launched headless chrome", "url", wsURL)

	return b, nil
}

// openPage creates a stealth tab and navigates it to the URL, waiting for
// the load event plus a short settle delay for late-running scripts.
func (m *Manager) openPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	b, err := m.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, navigateTimeout)
	defer cancel()

	if err = page.Context(navCtx).Navigate(pageURL); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err = page.Context(navCtx).WaitLoad(); err != nil {
		m.log.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}
	time.Sleep(settleDelay)

	return page, nil
}

// RenderHTML navigates to the URL and returns the post-JavaScript DOM as
// serialized HTML.
func (m *Manager) RenderHTML(ctx context.Context, pageURL string) (string, error) {
	page, err := m.openPage(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer page.Close()

	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("browser: get DOM %s: %w", pageURL, err)
	}

	return res.Value.Str(), nil
}

// Screenshot navigates to the URL and returns a full-page PNG.
func (m *Manager) Screenshot(ctx context.Context, pageURL string) ([]byte, error) {
	page, err := m.openPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	data, err := page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot %s: %w", pageURL, err)
	}

	return data, nil
}

// Close shuts down Chrome. Safe to call when the browser never launched.
func (m *Manager) Close() {
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.log.Warn("browser: close failed", "error", err)
		}
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}
