package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"github.com/bobmcallan/etoro-extractor/internal/config"
)

// wellKnownChromePaths are probed in order when no explicit binary is
// configured. Matches the locations the site tooling has historically been
// deployed against.
var wellKnownChromePaths = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/snap/bin/chromium",
}

// chromeDriver drives a Chrome/Chromium instance over CDP via chromedp.
type chromeDriver struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// allocatorOptions builds the exec allocator flag set for unattended
// operation: automation banners off, fixed window, plausible user agent.
func allocatorOptions(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(1920, 1080),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if path := resolveChromePath(cfg.ChromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}

// resolveChromePath picks the browser binary: explicit config first, then
// well-known locations. An empty result leaves the lookup to chromedp.
func resolveChromePath(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("CHROME_PATH"); env != "" {
		return env
	}
	for _, p := range wellKnownChromePaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// newChromeDriver launches a local browser process (or attaches to a remote
// one when remote_url is set) and verifies it with a blank-page run.
func newChromeDriver(ctx context.Context, cfg config.BrowserConfig) (*chromeDriver, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if cfg.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}

	d := &chromeDriver{ctx: browserCtx, cancel: cancel}

	// Launch verification. The first Run starts the process; a failure here
	// distinguishes a missing binary from a slow one.
	if err := d.run(ctx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionTimeout, err)
		}
		if isExecFailure(err) {
			return nil, fmt.Errorf("%w: %v", ErrBrowserUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserUnavailable, err)
	}
	return d, nil
}

// isExecFailure reports whether the error looks like a missing or broken
// browser binary rather than a protocol problem.
func isExecFailure(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory") ||
		strings.Contains(msg, "exec:")
}

// run executes chromedp actions on the driver's browser context while
// honouring the caller's deadline and cancellation.
func (d *chromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (d *chromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (d *chromeDriver) Location(ctx context.Context) (string, error) {
	var loc string
	err := d.run(ctx, chromedp.Location(&loc))
	return loc, err
}

func (d *chromeDriver) Exists(ctx context.Context, selector string) (bool, error) {
	var exists bool
	expr := fmt.Sprintf(`document.querySelector('%s') !== null`, escJS(selector))
	err := d.run(ctx, chromedp.Evaluate(expr, &exists))
	return exists, err
}

func (d *chromeDriver) BodyContains(ctx context.Context, phrase string) (bool, error) {
	var found bool
	expr := fmt.Sprintf(
		`document.body ? document.body.innerText.toLowerCase().includes('%s') : false`,
		escJS(strings.ToLower(phrase)))
	err := d.run(ctx, chromedp.Evaluate(expr, &found))
	return found, err
}

func (d *chromeDriver) Click(ctx context.Context, selector string) error {
	return d.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (d *chromeDriver) HTML(ctx context.Context) (string, error) {
	var html string
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	}))
	return html, err
}

func (d *chromeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := d.run(ctx, chromedp.FullScreenshot(&buf, 90))
	return buf, err
}

// Close tears down the browser context and, for locally launched processes,
// the process itself. Safe to call more than once.
func (d *chromeDriver) Close() error {
	d.cancel()
	return nil
}

func escJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
