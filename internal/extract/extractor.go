// Package extract runs the single synchronous pipeline: acquire one browser
// session, fetch the profile page, parse the snapshot, release the session.
// One wall-clock budget spans navigation and content-wait; the session is
// released on every exit path, including timeout and caller cancellation.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/etoro-extractor/internal/browser"
	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
	"github.com/bobmcallan/etoro-extractor/internal/fetch"
	"github.com/bobmcallan/etoro-extractor/internal/models"
	"github.com/bobmcallan/etoro-extractor/internal/parse"
)

// ErrNoUsername means neither the caller nor the configuration supplied a
// profile to extract.
var ErrNoUsername = errors.New("no username provided and no default configured")

// sessionFactory acquires a browser session. Swapped in tests for a factory
// over a fake driver.
type sessionFactory func(ctx context.Context, cfg config.BrowserConfig, logger *common.Logger) (*browser.Session, error)

// Extractor is the extraction pipeline. It is stateless apart from config
// and logger: concurrent extractions need independent calls, each of which
// acquires its own exclusive session.
type Extractor struct {
	cfg        *config.Config
	logger     *common.Logger
	newSession sessionFactory
	newFetcher func(driver browser.Driver, logger *common.Logger) *fetch.Fetcher
}

// New creates an extractor over the given immutable configuration.
func New(cfg *config.Config, logger *common.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		logger: logger,
		newSession: func(ctx context.Context, bc config.BrowserConfig, l *common.Logger) (*browser.Session, error) {
			return browser.NewSession(ctx, bc, l)
		},
		newFetcher: func(driver browser.Driver, l *common.Logger) *fetch.Fetcher {
			return fetch.New(driver, cfg, l)
		},
	}
}

// Portfolio extracts the public portfolio of username (falling back to the
// configured default). Expected site states — CAPTCHA, not found, private,
// timeout — come back inside the result; an error is returned only when no
// graceful result is possible (no browser, launch timeout).
func (e *Extractor) Portfolio(ctx context.Context, username string) (*models.ExtractResult, error) {
	if username == "" {
		username = e.cfg.Etoro.DefaultUsername
	}
	if username == "" {
		return nil, ErrNoUsername
	}

	runID := uuid.NewString()
	logger := e.logger.WithCorrelationId(runID)
	start := time.Now()

	profileURL := e.cfg.ProfileURL(username)
	result := &models.ExtractResult{
		Snapshot:   models.EmptySnapshot(username),
		ProfileURL: profileURL,
		RunID:      runID,
	}

	// One budget for the whole run: launch, navigation, content wait.
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Browser.GetTimeout())
	defer cancel()

	logger.Info().Str("user", username).Str("url", profileURL).Msg("starting portfolio extraction")

	session, err := e.newSession(ctx, e.cfg.Browser, logger)
	if err != nil {
		logger.Error().Err(err).Msg("browser session acquisition failed")
		return nil, fmt.Errorf("acquire browser session: %w", err)
	}
	defer session.Release()

	fetched, err := e.newFetcher(session.Driver(), logger).Fetch(ctx, profileURL)
	if err != nil {
		// Release before surfacing: the deferred Release is idempotent, so
		// an explicit call here guarantees the process is gone before the
		// caller observes the outcome.
		session.Release()
		result.ElapsedMS = time.Since(start).Milliseconds()
		switch {
		case errors.Is(err, fetch.ErrContentTimeout):
			logger.Warn().Err(err).Msg("content wait timed out, returning empty result")
			result.Status = models.FetchStatusTimeout
			return result, nil
		case errors.Is(err, fetch.ErrNavigationFailed):
			logger.Warn().Err(err).Msg("navigation failed, returning empty result")
			result.Status = models.FetchStatusNavigationFailed
			return result, nil
		default:
			return nil, fmt.Errorf("fetch profile: %w", err)
		}
	}

	result.Status = fetched.Status
	if fetched.FinalURL != "" {
		result.ProfileURL = fetched.FinalURL
	}

	if fetched.Status == models.FetchStatusSuccess {
		snap, warnings, err := parse.Parse(fetched.HTML, username)
		if err != nil {
			// Parse failure after a successful fetch still yields a result;
			// the page rendered, the markup just defeated us.
			logger.Error().Err(err).Msg("snapshot parse failed")
			result.Warnings = append(result.Warnings, models.ParseWarning{
				Field: "document", Detail: err.Error(),
			})
		} else {
			result.Snapshot = snap
			result.Warnings = warnings
			for _, w := range warnings {
				logger.Warn().Str("field", w.Field).Msg(w.Detail)
			}
		}
	}

	result.ElapsedMS = time.Since(start).Milliseconds()
	logger.Info().
		Str("status", string(result.Status)).
		Int("assets", result.Snapshot.TotalAssets).
		Int("warnings", len(result.Warnings)).
		Msg("extraction finished")

	return result, nil
}
