package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"memberscout/internal/types"
)

// directoryPage adapts the session's page to the enumerator's view of the
// directory and its pagination control.
type directoryPage struct {
	s *Session
}

func (d *directoryPage) URL() string {
	info, err := d.s.page.Info()
	if err != nil || info == nil {
		return d.s.cfg.Target.URL
	}
	return info.URL
}

func (d *directoryPage) PaginationOptions(wait time.Duration) ([]string, error) {
	selector := d.s.cfg.Target.PaginationSelector

	control, err := d.s.page.Timeout(wait).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrNoPagination, selector, err)
	}

	options, err := control.Elements("option")
	if err != nil {
		return nil, fmt.Errorf("read pagination options: %w", err)
	}

	values := make([]string, 0, len(options))
	for _, opt := range options {
		value, err := opt.Attribute("value")
		if err == nil && value != nil && *value != "" {
			values = append(values, *value)
			continue
		}
		text, err := opt.Text()
		if err != nil {
			continue
		}
		values = append(values, text)
	}
	return values, nil
}

func (d *directoryPage) SelectPagination(value string) error {
	selector := d.s.cfg.Target.PaginationSelector

	control, err := d.s.page.Timeout(d.s.cfg.Scrape.ControlWait).Element(selector)
	if err != nil {
		return fmt.Errorf("pagination control %q: %w", selector, err)
	}

	// Select dispatches the input and change events, which is what triggers
	// the directory to re-render its rows.
	optionCSS := fmt.Sprintf("[value=%q]", value)
	if err := control.Select([]string{optionCSS}, true, rod.SelectorTypeCSSSector); err != nil {
		return fmt.Errorf("select option %q: %w", value, err)
	}
	return nil
}

func (d *directoryPage) HTML() (string, error) {
	return d.s.page.HTML()
}

func (d *directoryPage) Snapshot(name string) error {
	return d.s.writeSnapshot(name)
}

// pageVisitor loads profile pages in the session's page.
type pageVisitor struct {
	s *Session
}

func (v *pageVisitor) Visit(ctx context.Context, url string) (string, error) {
	p := v.s.page.Context(ctx).Timeout(v.s.cfg.Scrape.NavTimeout)

	if err := p.Navigate(url); err != nil {
		return "", &types.NavError{URL: url, Err: err}
	}
	if err := p.WaitStable(300 * time.Millisecond); err != nil {
		v.s.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}

	html, err := p.HTML()
	if err != nil {
		return "", &types.NavError{URL: url, Err: err}
	}
	return html, nil
}

func (v *pageVisitor) Snapshot(name string) error {
	return v.s.writeSnapshot(name)
}
