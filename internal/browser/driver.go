// Package browser owns the lifecycle of one automated browser process and
// hides the concrete automation engine behind the Driver interface. The
// engine is a volatile external dependency; nothing outside this package
// imports chromedp.
package browser

import (
	"context"
	"errors"
)

var (
	// ErrBrowserUnavailable means no compatible browser binary could be
	// located or the process died at launch.
	ErrBrowserUnavailable = errors.New("no usable browser found")

	// ErrSessionTimeout means the browser did not come up within the
	// configured launch budget.
	ErrSessionTimeout = errors.New("browser session timed out during launch")
)

// Driver is the capability surface the fetch pipeline needs from an
// automation engine: navigate, probe markers, click, snapshot, terminate.
// Implementations must be safe to call from a single goroutine; the pipeline
// is strictly sequential.
type Driver interface {
	// Navigate loads the given URL and waits for the document body.
	Navigate(ctx context.Context, url string) error

	// Location returns the current page URL after any redirects.
	Location(ctx context.Context) (string, error)

	// Exists reports whether at least one element matches the CSS selector.
	Exists(ctx context.Context, selector string) (bool, error)

	// BodyContains reports whether the rendered page text contains the
	// phrase, case-insensitively.
	BodyContains(ctx context.Context, phrase string) (bool, error)

	// Click clicks the first element matching the CSS selector.
	Click(ctx context.Context, selector string) error

	// HTML returns the outer HTML of the rendered document.
	HTML(ctx context.Context) (string, error)

	// Screenshot captures a full-page screenshot as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close terminates the underlying browser process. It must be safe to
	// call more than once.
	Close() error
}
