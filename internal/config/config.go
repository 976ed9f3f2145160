// Package config resolves extractor settings once at startup, layering
// defaults -> TOML file(s) -> environment -> CLI flags. The resulting Config
// is treated as immutable and threaded through every component.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Debug   bool          `toml:"debug"`
	Etoro   EtoroConfig   `toml:"etoro"`
	Browser BrowserConfig `toml:"browser"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

// EtoroConfig contains target-site settings.
type EtoroConfig struct {
	BaseURL         string `toml:"base_url"`
	ProfilePath     string `toml:"profile_path"` // {username} is substituted, path-escaped
	DefaultUsername string `toml:"default_username"`
}

// BrowserConfig contains browser session settings.
type BrowserConfig struct {
	Headless       bool   `toml:"headless"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ChromePath     string `toml:"chrome_path"` // explicit binary; empty probes well-known paths
	RemoteURL      string `toml:"remote_url"`  // CDP websocket URL; when set no local process launches
	UserAgent      string `toml:"user_agent"`
}

// GetTimeout returns the overall fetch budget, falling back to 30s for
// missing or nonsense values.
func (c *BrowserConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OutputConfig contains rendering settings.
type OutputConfig struct {
	Format   string `toml:"format"`    // table, json, or csv
	DebugDir string `toml:"debug_dir"` // where debug HTML dumps and screenshots land
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// ProfileURL builds the public profile URL for a username from the configured
// template.
func (c *Config) ProfileURL(username string) string {
	path := strings.Replace(c.Etoro.ProfilePath, "{username}", url.PathEscape(username), 1)
	return strings.TrimSuffix(c.Etoro.BaseURL, "/") + path
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Explicitly named files must exist.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Variable names match the original extractor's .env contract.
func applyEnvOverrides(config *Config) {
	if debug := os.Getenv("DEBUG"); debug != "" {
		if d, err := strconv.ParseBool(debug); err == nil {
			config.Debug = d
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if user := os.Getenv("ETORO_DEFAULT_USERNAME"); user != "" {
		config.Etoro.DefaultUsername = user
	}
	if base := os.Getenv("ETORO_BASE_URL"); base != "" {
		config.Etoro.BaseURL = base
	}
	if headless := os.Getenv("BROWSER_HEADLESS"); headless != "" {
		if h, err := strconv.ParseBool(headless); err == nil {
			config.Browser.Headless = h
		}
	}
	if timeout := os.Getenv("BROWSER_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil && t > 0 {
			config.Browser.TimeoutSeconds = t
		}
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		config.Browser.ChromePath = path
	}
	if remote := os.Getenv("BROWSER_REMOTE_URL"); remote != "" {
		config.Browser.RemoteURL = remote
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, output string, debug bool) {
	if output != "" {
		config.Output.Format = output
	}
	if debug {
		config.Debug = true
	}
}

// Validate returns human-readable issues for mandatory fields. An empty
// slice means the config is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Etoro.BaseURL == "" {
		issues = append(issues, "etoro.base_url must not be empty")
	}
	if !strings.Contains(c.Etoro.ProfilePath, "{username}") {
		issues = append(issues, "etoro.profile_path must contain a {username} placeholder")
	}
	switch c.Output.Format {
	case "table", "json", "csv":
	default:
		issues = append(issues, fmt.Sprintf("output.format must be table, json, or csv (got %q)", c.Output.Format))
	}
	if c.Browser.TimeoutSeconds < 0 {
		issues = append(issues, "browser.timeout_seconds must not be negative")
	}

	return issues
}
