package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/bobmcallan/etoro-extractor/internal/browser"
	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
	"github.com/bobmcallan/etoro-extractor/internal/extract"
	"github.com/bobmcallan/etoro-extractor/internal/format"
	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// portfolioCmd holds the flags for the 'portfolio' subcommand.
type portfolioCmd struct {
	user       string
	output     string
	save       string
	debug      bool
	configFile string

	// runExtract is swapped in tests to avoid launching a browser.
	runExtract func(ctx context.Context, cfg *config.Config, logger *common.Logger, user string) (*models.ExtractResult, error)

	stdout io.Writer
	stderr io.Writer
}

func newPortfolioCmd() *portfolioCmd {
	return &portfolioCmd{
		runExtract: func(ctx context.Context, cfg *config.Config, logger *common.Logger, user string) (*models.ExtractResult, error) {
			return extract.New(cfg, logger).Portfolio(ctx, user)
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "extract the public portfolio of an eToro user" }
func (*portfolioCmd) Usage() string {
	return `etoro-extractor portfolio [-user <name>] [-output table|json|csv] [-save <file>] [-debug] [-config <file>]

  Opens the public profile page of the given user in a headless browser,
  waits for the portfolio table to render, and prints it in the chosen
  format. Without -user the configured default username is used.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "eToro username (defaults to the configured default)")
	f.StringVar(&c.user, "u", "", "shorthand for -user")
	f.StringVar(&c.output, "output", "", "output format: table, json, or csv")
	f.StringVar(&c.output, "o", "", "shorthand for -output")
	f.StringVar(&c.save, "save", "", "also write the formatted output to this file")
	f.StringVar(&c.save, "s", "", "shorthand for -save")
	f.BoolVar(&c.debug, "debug", false, "enable debug logging and page dumps")
	f.BoolVar(&c.debug, "d", false, "shorthand for -debug")
	f.StringVar(&c.configFile, "config", "", "path to a TOML config file (skips auto-discovery)")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configFile, c.output, c.debug)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(c.stderr, "Error: %s\n", issue)
		}
		return subcommands.ExitUsageError
	}

	username := c.user
	if username == "" {
		username = cfg.Etoro.DefaultUsername
	}
	if username == "" {
		fmt.Fprintln(c.stderr, "Error: no username provided (use -user or set ETORO_DEFAULT_USERNAME)")
		return subcommands.ExitUsageError
	}

	logger := setupLogger(cfg)
	fmt.Fprintf(c.stdout, "Extracting portfolio for user: %s\n", username)

	result, err := c.runExtract(ctx, cfg, logger, username)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrNoUsername):
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		case errors.Is(err, browser.ErrBrowserUnavailable):
			fmt.Fprintf(c.stderr, "Error: no usable browser found: %v\n", err)
			fmt.Fprintln(c.stderr, "Install Chrome/Chromium or set CHROME_PATH.")
		case errors.Is(err, browser.ErrSessionTimeout):
			fmt.Fprintf(c.stderr, "Error: browser session timed out: %v\n", err)
		default:
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(c.stderr, "warning: %s\n", w)
	}

	if !result.OK() {
		// Expected site states: report the outcome and finish cleanly so
		// scripted callers can retry on their own schedule.
		fmt.Fprintf(c.stdout, "%s (%s)\n", result.Status.Message(), result.ProfileURL)
		return subcommands.ExitSuccess
	}

	rendered, err := format.Render(result.Snapshot, cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Fprintln(c.stdout, rendered)

	if c.save != "" {
		if err := os.WriteFile(c.save, []byte(rendered+"\n"), 0644); err != nil {
			fmt.Fprintf(c.stderr, "Error: failed to save output to %s: %v\n", c.save, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(c.stdout, "Results saved to %s\n", c.save)
	}

	return subcommands.ExitSuccess
}
