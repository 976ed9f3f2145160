// Package fetch drives navigation to a profile page and classifies the
// terminal page state: rendered content, anti-bot challenge, missing or
// private profile, or timeout. Expected site states come back as tagged
// results, never as errors.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/etoro-extractor/internal/browser"
	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
	"github.com/bobmcallan/etoro-extractor/internal/models"
)

var (
	// ErrContentTimeout means the overall budget expired before any marker
	// appeared. The pipeline degrades this to a graceful empty result.
	ErrContentTimeout = errors.New("timed out waiting for page content")

	// ErrNavigationFailed means the engine could not load or keep the page.
	ErrNavigationFailed = errors.New("navigation failed")
)

// Result is the tagged outcome of one fetch. HTML is populated only on
// success; the other terminal states carry no DOM.
type Result struct {
	Status   models.FetchStatus
	HTML     string
	FinalURL string
}

// Fetcher runs the NAVIGATING -> WAITING_CONTENT state machine over a
// browser driver. It holds no mutable state between fetches.
type Fetcher struct {
	driver browser.Driver
	cfg    *config.Config
	logger *common.Logger

	// Polling knobs, exported so tests can compress the schedule.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	CaptchaWait    time.Duration
	CaptchaChecks  int
}

// New creates a fetcher over an acquired driver.
func New(driver browser.Driver, cfg *config.Config, logger *common.Logger) *Fetcher {
	return &Fetcher{
		driver:         driver,
		cfg:            cfg,
		logger:         logger,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		CaptchaWait:    5 * time.Second,
		CaptchaChecks:  6,
	}
}

// Fetch navigates to the profile URL and polls for a terminal state within
// the caller's context budget. CAPTCHA, not-found, and private are reported
// in the Result; only timeout and engine failures return an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	f.logger.Info().Str("url", url).Msg("navigating to profile page")

	if err := f.driver.Navigate(ctx, url); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrContentTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrNavigationFailed, err)
	}

	backoff := f.InitialBackoff
	tabClicked := false

	for {
		status, res, err := f.classify(ctx)
		if err != nil {
			return nil, err
		}
		switch status {
		case models.FetchStatusSuccess:
			f.dumpArtifacts(ctx, status)
			return res, nil

		case models.FetchStatusCaptchaDetected:
			cleared, err := f.waitForCaptchaClear(ctx)
			if err != nil {
				return nil, err
			}
			if cleared {
				f.logger.Info().Msg("challenge cleared, resuming content wait")
				continue
			}
			f.logger.Warn().Str("url", url).Msg("challenge did not clear")
			f.dumpArtifacts(ctx, status)
			return f.terminal(ctx, status), nil

		case models.FetchStatusProfileNotFound, models.FetchStatusProfilePrivate:
			f.logger.Info().Str("status", string(status)).Msg("profile is not accessible")
			f.dumpArtifacts(ctx, status)
			return f.terminal(ctx, status), nil
		}

		// Content not up yet. Clicking the portfolio tab sometimes triggers
		// the row render; try once, best effort.
		if !tabClicked {
			tabClicked = true
			f.clickPortfolioTab(ctx)
		}

		if err := sleepCtx(ctx, backoff); err != nil {
			f.dumpArtifacts(context.WithoutCancel(ctx), models.FetchStatusTimeout)
			return nil, fmt.Errorf("%w: after %s", ErrContentTimeout, url)
		}
		if backoff *= 2; backoff > f.MaxBackoff {
			backoff = f.MaxBackoff
		}
	}
}

// classify probes the current page once. A zero status means nothing
// terminal is visible yet.
func (f *Fetcher) classify(ctx context.Context) (models.FetchStatus, *Result, error) {
	for _, sel := range contentMarkers {
		ok, err := f.driver.Exists(ctx, sel)
		if err != nil {
			return "", nil, f.probeErr(ctx, err)
		}
		if ok {
			html, err := f.driver.HTML(ctx)
			if err != nil {
				return "", nil, f.probeErr(ctx, err)
			}
			finalURL, _ := f.driver.Location(ctx)
			return models.FetchStatusSuccess, &Result{
				Status:   models.FetchStatusSuccess,
				HTML:     html,
				FinalURL: finalURL,
			}, nil
		}
	}

	present, err := f.captchaPresent(ctx)
	if err != nil {
		return "", nil, err
	}
	if present {
		return models.FetchStatusCaptchaDetected, nil, nil
	}

	if found, err := f.driver.BodyContains(ctx, notFoundPhrase); err != nil {
		return "", nil, f.probeErr(ctx, err)
	} else if found {
		return models.FetchStatusProfileNotFound, nil, nil
	}
	if found, err := f.driver.BodyContains(ctx, privatePhrase); err != nil {
		return "", nil, f.probeErr(ctx, err)
	} else if found {
		return models.FetchStatusProfilePrivate, nil, nil
	}

	return "", nil, nil
}

func (f *Fetcher) captchaPresent(ctx context.Context) (bool, error) {
	for _, sel := range captchaMarkers {
		ok, err := f.driver.Exists(ctx, sel)
		if err != nil {
			return false, f.probeErr(ctx, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// waitForCaptchaClear gives a challenge a bounded chance to disappear — a
// human may solve it in headful mode. Returns true when it cleared.
func (f *Fetcher) waitForCaptchaClear(ctx context.Context) (bool, error) {
	f.logger.Warn().Msg("challenge detected, waiting for it to clear")
	for i := 0; i < f.CaptchaChecks; i++ {
		if err := sleepCtx(ctx, f.CaptchaWait); err != nil {
			return false, fmt.Errorf("%w: during challenge wait", ErrContentTimeout)
		}
		present, err := f.captchaPresent(ctx)
		if err != nil {
			return false, err
		}
		if !present {
			return true, nil
		}
	}
	return false, nil
}

// clickPortfolioTab clicks the first visible portfolio tab marker. Failure
// is logged and ignored; polling continues either way.
func (f *Fetcher) clickPortfolioTab(ctx context.Context) {
	for _, sel := range portfolioTabMarkers {
		ok, err := f.driver.Exists(ctx, sel)
		if err != nil || !ok {
			continue
		}
		if err := f.driver.Click(ctx, sel); err != nil {
			f.logger.Debug().Err(err).Str("selector", sel).Msg("portfolio tab click failed")
			continue
		}
		f.logger.Debug().Str("selector", sel).Msg("clicked portfolio tab")
		return
	}
}

// terminal builds a no-DOM result for a non-success state.
func (f *Fetcher) terminal(ctx context.Context, status models.FetchStatus) *Result {
	finalURL, _ := f.driver.Location(ctx)
	return &Result{Status: status, FinalURL: finalURL}
}

// probeErr maps a driver error during polling: context expiry is a content
// timeout, anything else means the engine lost the page.
func (f *Fetcher) probeErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrContentTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNavigationFailed, err)
}

// dumpArtifacts saves the rendered HTML and a screenshot for offline selector
// debugging. Debug mode only; failures are logged, never fatal.
func (f *Fetcher) dumpArtifacts(ctx context.Context, status models.FetchStatus) {
	if !f.cfg.Debug {
		return
	}
	dir := f.cfg.Output.DebugDir
	if dir == "" {
		dir = "."
	}
	stamp := time.Now().Format("20060102_150405")

	if html, err := f.driver.HTML(ctx); err == nil {
		path := filepath.Join(dir, fmt.Sprintf("etoro_%s_%s.html", status, stamp))
		if werr := os.WriteFile(path, []byte(html), 0644); werr == nil {
			f.logger.Debug().Str("path", path).Msg("saved page dump")
		}
	}
	if shot, err := f.driver.Screenshot(ctx); err == nil {
		path := filepath.Join(dir, fmt.Sprintf("etoro_%s_%s.png", status, stamp))
		if werr := os.WriteFile(path, shot, 0644); werr == nil {
			f.logger.Debug().Str("path", path).Msg("saved screenshot")
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
