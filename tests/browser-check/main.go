// tests/browser-check/main.go
//
// Standalone diagnostic for the browser layer. Launches a session with the
// same configuration the extractor uses, navigates to a URL, probes selectors,
// and optionally saves a screenshot — useful for working out why an
// extraction sees a CAPTCHA or an empty page on a given host.
//
// Usage:
//   go run ./tests/browser-check
//   go run ./tests/browser-check -url https://www.etoro.com/people/someuser
//   go run ./tests/browser-check -url https://example.com -check '.et-table-row.clickable-row'
//   go run ./tests/browser-check -headful -screenshot /tmp/page.png

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bobmcallan/etoro-extractor/internal/browser"
	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
)

// multiFlag allows repeated -check flags.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var (
		url        string
		screenshot string
		headful    bool
		timeoutSec int
		checks     multiFlag
	)

	flag.StringVar(&url, "url", "about:blank", "URL to open")
	flag.StringVar(&screenshot, "screenshot", "", "Save a screenshot to this path")
	flag.BoolVar(&headful, "headful", false, "Run with a visible browser window")
	flag.IntVar(&timeoutSec, "timeout", 30, "Overall timeout in seconds")
	flag.Var(&checks, "check", "CSS selector that must exist (repeatable)")
	flag.Parse()

	cfg := config.NewDefaultConfig()
	cfg.Browser.Headless = !headful
	cfg.Browser.TimeoutSeconds = timeoutSec
	if path := os.Getenv("CHROME_PATH"); path != "" {
		cfg.Browser.ChromePath = path
	}

	logger := common.NewLogger("debug")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Browser.GetTimeout())
	defer cancel()

	start := time.Now()
	session, err := browser.NewSession(ctx, cfg.Browser, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: launch browser: %v\n", err)
		os.Exit(1)
	}
	defer session.Release()
	fmt.Printf("browser launched in %s\n", time.Since(start).Round(time.Millisecond))

	driver := session.Driver()
	if err := driver.Navigate(ctx, url); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: navigate %s: %v\n", url, err)
		os.Exit(1)
	}
	loc, _ := driver.Location(ctx)
	fmt.Printf("navigated: %s\n", loc)

	failed := 0
	for _, sel := range checks {
		ok, err := driver.Exists(ctx, sel)
		switch {
		case err != nil:
			fmt.Printf("FAIL  %s  (%v)\n", sel, err)
			failed++
		case !ok:
			fmt.Printf("FAIL  %s  (not present)\n", sel)
			failed++
		default:
			fmt.Printf("PASS  %s\n", sel)
		}
	}

	if screenshot != "" {
		shot, err := driver.Screenshot(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: screenshot: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(screenshot, shot, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: write screenshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("screenshot: %s\n", screenshot)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
