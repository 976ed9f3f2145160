package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
)

func main() {
	// .env in the working directory feeds the environment overrides; a
	// missing file is the normal case.
	_ = godotenv.Load()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(newPortfolioCmd(), "")
	subcommands.Register(&versionCmd{}, "")

	flag.Parse()

	// Ctrl+C cancels an in-flight extraction through the same
	// guaranteed-release path as a timeout.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(int(subcommands.Execute(ctx)))
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first so the config is found even when the
// working directory differs from the binary location.
func configSearchPaths() []string {
	candidates := []string{
		"etoro.toml",
		filepath.Join("config", "etoro.toml"),
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "etoro.toml"),
		filepath.Join(binDir, "config", "etoro.toml"),
	}
	return append(paths, candidates...)
}

// loadConfig resolves the configuration: defaults -> discovered or explicit
// TOML file -> environment -> flag overrides.
func loadConfig(explicitPath, outputFlag string, debugFlag bool) (*config.Config, error) {
	path := explicitPath
	if path == "" {
		for _, candidate := range configSearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	config.ApplyFlagOverrides(cfg, outputFlag, debugFlag)
	return cfg, nil
}

// setupLogger creates an arbor logger from config. Debug mode forces the
// level down so the full causal detail reaches the console.
func setupLogger(cfg *config.Config) *common.Logger {
	level := cfg.Logging.Level
	if cfg.Debug {
		level = "debug"
	}
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
