package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"memberscout/internal/config"
	"memberscout/internal/scrape"
	"memberscout/internal/types"
)

// Session owns one headless browser process and its single page for the
// duration of a scrape attempt. The driver opens a fresh Session per attempt
// so no browser state leaks between retries.
type Session struct {
	cfg     *config.Config
	browser *rod.Browser
	page    *rod.Page
	logger  *slog.Logger
}

// NewSession launches a browser and opens a stealth page.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		logger: logger.With("component", "browser_session"),
	}

	launchURL, err := launcher.New().
		Headless(cfg.Scrape.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	s.browser = browser

	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("open stealth page: %w", err)
	}
	s.page = page

	s.logger.Info("browser session ready", "headless", cfg.Scrape.Headless)
	return s, nil
}

// NavigateRoot loads the directory root and waits for network quiescence as
// the readiness signal.
func (s *Session) NavigateRoot(ctx context.Context) error {
	target := s.cfg.Target.URL

	p := s.page.Context(ctx).Timeout(s.cfg.Scrape.NavTimeout)
	if err := p.Navigate(target); err != nil {
		return &types.NavError{URL: target, Err: err}
	}

	wait := p.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	wait()

	s.logger.Info("directory root loaded", "url", target)

	if s.cfg.Snapshot.Enabled {
		if err := s.writeSnapshot("directory.png"); err != nil {
			s.logger.Warn("root snapshot failed", "error", err)
		}
	}
	return nil
}

// Directory returns the pagination-control view of the current page.
func (s *Session) Directory() scrape.DirectoryPage {
	return &directoryPage{s: s}
}

// Visitor returns a profile visitor that drives this session's page.
func (s *Session) Visitor() scrape.Visitor {
	return &pageVisitor{s: s}
}

// Close shuts down the browser process.
func (s *Session) Close() error {
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}

// writeSnapshot captures the current page as a PNG under the snapshot dir.
func (s *Session) writeSnapshot(name string) error {
	data, err := s.page.Screenshot(true, nil)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	dir := s.cfg.Snapshot.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	s.logger.Debug("snapshot written", "path", path)
	return nil
}
