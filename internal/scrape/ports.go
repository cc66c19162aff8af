package scrape

import (
	"context"
	"time"
)

// DirectoryPage is the loaded directory root with its pagination control.
// The production implementation drives a live browser page; tests stub it.
type DirectoryPage interface {
	// URL returns the page's current URL, used to resolve relative links.
	URL() string

	// PaginationOptions returns the selectable option values of the
	// pagination control in presented order, waiting up to wait for the
	// control to appear.
	PaginationOptions(wait time.Duration) ([]string, error)

	// SelectPagination selects the given option value and dispatches the
	// change event so the page re-renders.
	SelectPagination(value string) error

	// HTML returns the current rendered document.
	HTML() (string, error)

	// Snapshot writes a diagnostic screenshot under the given name.
	Snapshot(name string) error
}

// Visitor loads profile pages. Implemented by the browser session and by the
// direct HTTP client.
type Visitor interface {
	// Visit navigates to the URL and returns the rendered document.
	Visit(ctx context.Context, url string) (string, error)

	// Snapshot writes a diagnostic screenshot of the last visited page.
	Snapshot(name string) error
}
