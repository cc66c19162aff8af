package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"memberscout/internal/config"
	"memberscout/internal/extract"
	"memberscout/internal/types"
)

// Walker visits every collected profile link once, in collection order, and
// accumulates the extracted records. Per-item failures are logged with the
// item's index and skipped; they are never retried and never abort the walk.
type Walker struct {
	extractor *extract.Extractor
	settle    time.Duration
	snapshot  bool
	logger    *slog.Logger
}

// NewWalker creates a profile walker.
func NewWalker(cfg *config.Config, extractor *extract.Extractor, logger *slog.Logger) *Walker {
	return &Walker{
		extractor: extractor,
		settle:    cfg.Scrape.SettleDuration,
		snapshot:  cfg.Snapshot.Enabled,
		logger:    logger.With("component", "walker"),
	}
}

// Walk visits each link and returns the records that extracted successfully.
// The output preserves the relative order of its inputs and may be shorter
// than the link set. Only context cancellation ends the walk early.
func (w *Walker) Walk(ctx context.Context, links *types.LinkSet, visitor Visitor) ([]types.MemberRecord, error) {
	records := make([]types.MemberRecord, 0, links.Len())

	for i, link := range links.All() {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		pageHTML, err := visitor.Visit(ctx, link)
		if err != nil {
			w.logger.Warn("profile navigation failed, skipping",
				"index", i, "url", link, "error", err)
			continue
		}

		time.Sleep(w.settle)

		rec, err := w.extractor.Extract(pageHTML)
		if err != nil {
			w.logger.Warn("profile extraction failed, skipping",
				"index", i, "url", link, "error", err)
			continue
		}
		records = append(records, rec)

		w.logger.Debug("profile visited", "index", i, "url", link, "company", rec.Company)

		if w.snapshot {
			if err := visitor.Snapshot(fmt.Sprintf("profile_%03d.png", i)); err != nil {
				w.logger.Warn("profile snapshot failed", "index", i, "error", err)
			}
		}
	}

	w.logger.Info("profile walk complete", "visited", links.Len(), "records", len(records))
	return records, nil
}
