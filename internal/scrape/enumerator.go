package scrape

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"memberscout/internal/config"
	"memberscout/internal/types"
)

// Enumerator walks every pagination option of the directory page and
// accumulates the de-duplicated set of profile links reachable across them.
type Enumerator struct {
	pattern  *regexp.Regexp
	settle   time.Duration
	wait     time.Duration
	snapshot bool
	logger   *slog.Logger
}

// NewEnumerator creates a pagination enumerator.
func NewEnumerator(cfg *config.Config, logger *slog.Logger) (*Enumerator, error) {
	pattern, err := regexp.Compile(cfg.Target.ProfilePattern)
	if err != nil {
		return nil, fmt.Errorf("compile profile pattern: %w", err)
	}

	return &Enumerator{
		pattern:  pattern,
		settle:   cfg.Scrape.SettleDuration,
		wait:     cfg.Scrape.ControlWait,
		snapshot: cfg.Snapshot.Enabled,
		logger:   logger.With("component", "enumerator"),
	}, nil
}

// Collect selects each pagination option in presented order and gathers the
// profile links it renders. A missing control degrades to an empty LinkSet,
// as does a control with zero options; neither is fatal.
func (e *Enumerator) Collect(page DirectoryPage) (*types.LinkSet, error) {
	set := types.NewLinkSet()

	options, err := page.PaginationOptions(e.wait)
	if err != nil {
		e.logger.Warn("pagination control not found, no links collected", "error", err)
		return set, nil
	}
	if len(options) == 0 {
		e.logger.Warn("pagination control exposes zero options")
		return set, nil
	}

	e.logger.Info("pagination options discovered", "count", len(options), "options", options)

	for _, opt := range options {
		if err := page.SelectPagination(opt); err != nil {
			e.logger.Warn("select pagination option failed, skipping", "option", opt, "error", err)
			continue
		}

		// No render-complete signal is available; give the page a fixed
		// settle window to re-render.
		time.Sleep(e.settle)

		pageHTML, err := page.HTML()
		if err != nil {
			e.logger.Warn("read directory page failed, skipping option", "option", opt, "error", err)
			continue
		}

		links, err := profileLinks(pageHTML, page.URL(), e.pattern)
		if err != nil {
			e.logger.Warn("scan directory links failed, skipping option", "option", opt, "error", err)
			continue
		}

		added := 0
		for _, link := range links {
			if set.Add(link) {
				added++
			}
		}
		e.logger.Info("pagination option scanned",
			"option", opt,
			"links", len(links),
			"new", added,
			"total", set.Len(),
		)

		if e.snapshot {
			if err := page.Snapshot(fmt.Sprintf("option_%s.png", opt)); err != nil {
				e.logger.Warn("option snapshot failed", "option", opt, "error", err)
			}
		}
	}

	return set, nil
}
