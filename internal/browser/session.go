package browser

import (
	"context"
	"sync"

	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
)

// Session is a scoped, exclusive handle to one automated browser process.
// Acquisition launches the process; Release always terminates it, exactly
// once, on every exit path. Sessions are not pooled or shared.
type Session struct {
	driver Driver
	logger *common.Logger
	once   sync.Once
}

// NewSession launches a browser per the configuration and verifies it is
// responsive. The caller owns the session and must call Release.
// Returns ErrBrowserUnavailable when no usable browser exists and
// ErrSessionTimeout when launch exceeds the context deadline.
func NewSession(ctx context.Context, cfg config.BrowserConfig, logger *common.Logger) (*Session, error) {
	logger.Debug().
		Bool("headless", cfg.Headless).
		Str("remote_url", cfg.RemoteURL).
		Msg("launching browser session")

	driver, err := newChromeDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().Msg("browser session ready")
	return &Session{driver: driver, logger: logger}, nil
}

// NewSessionFromDriver wraps an existing driver in a session. Tests use this
// to substitute a fake engine; the release guarantee is identical.
func NewSessionFromDriver(driver Driver, logger *common.Logger) *Session {
	return &Session{driver: driver, logger: logger}
}

// Driver exposes the engine capability surface for the fetch pipeline.
func (s *Session) Driver() Driver {
	return s.driver
}

// Release terminates the browser process. Idempotent: repeated calls after
// the first are no-ops, so defer-on-acquire composes with explicit release
// on timeout paths.
func (s *Session) Release() {
	s.once.Do(func() {
		if err := s.driver.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("browser terminate reported an error")
			return
		}
		s.logger.Debug().Msg("browser session released")
	})
}
