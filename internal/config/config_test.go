package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Etoro.BaseURL != "https://www.etoro.com" {
		t.Errorf("BaseURL = %q, want https://www.etoro.com", cfg.Etoro.BaseURL)
	}
	if cfg.Etoro.ProfilePath != "/people/{username}" {
		t.Errorf("ProfilePath = %q, want /people/{username}", cfg.Etoro.ProfilePath)
	}
	if !cfg.Browser.Headless {
		t.Error("Headless default = false, want true")
	}
	if cfg.Browser.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Browser.TimeoutSeconds)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Format = %q, want table", cfg.Output.Format)
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		t.Errorf("default config has validation issues: %v", issues)
	}
}

func TestLoadFromFiles_TOMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "etoro.toml")
	content := `
[etoro]
default_username = "investor1"

[browser]
headless = false
timeout_seconds = 60

[output]
format = "json"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles: %v", err)
	}

	if cfg.Etoro.DefaultUsername != "investor1" {
		t.Errorf("DefaultUsername = %q, want investor1", cfg.Etoro.DefaultUsername)
	}
	if cfg.Browser.Headless {
		t.Error("Headless = true, want false from file")
	}
	if cfg.Browser.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.Browser.TimeoutSeconds)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	// Untouched sections keep their defaults
	if cfg.Etoro.BaseURL != "https://www.etoro.com" {
		t.Errorf("BaseURL = %q, want default preserved", cfg.Etoro.BaseURL)
	}
}

func TestLoadFromFiles_MissingFileErrors(t *testing.T) {
	if _, err := LoadFromFiles(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFromFiles with missing file succeeded, want error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ETORO_DEFAULT_USERNAME", "investor2")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("BROWSER_TIMEOUT", "45")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("BROWSER_REMOTE_URL", "ws://localhost:9222")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if !cfg.Debug {
		t.Error("Debug not set from DEBUG env")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug (lowercased)", cfg.Logging.Level)
	}
	if cfg.Etoro.DefaultUsername != "investor2" {
		t.Errorf("DefaultUsername = %q, want investor2", cfg.Etoro.DefaultUsername)
	}
	if cfg.Browser.Headless {
		t.Error("Headless = true, want false from BROWSER_HEADLESS")
	}
	if cfg.Browser.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", cfg.Browser.TimeoutSeconds)
	}
	if cfg.Browser.ChromePath != "/usr/bin/chromium" {
		t.Errorf("ChromePath = %q, want /usr/bin/chromium", cfg.Browser.ChromePath)
	}
	if cfg.Browser.RemoteURL != "ws://localhost:9222" {
		t.Errorf("RemoteURL = %q, want ws://localhost:9222", cfg.Browser.RemoteURL)
	}
}

func TestApplyEnvOverrides_BadValuesIgnored(t *testing.T) {
	t.Setenv("DEBUG", "banana")
	t.Setenv("BROWSER_TIMEOUT", "-5")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Debug {
		t.Error("Debug set from unparseable DEBUG value")
	}
	if cfg.Browser.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30 for negative env value", cfg.Browser.TimeoutSeconds)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, "csv", true)

	if cfg.Output.Format != "csv" {
		t.Errorf("Format = %q, want csv", cfg.Output.Format)
	}
	if !cfg.Debug {
		t.Error("Debug not set from flag")
	}

	// Empty flag values leave config untouched
	cfg2 := NewDefaultConfig()
	ApplyFlagOverrides(cfg2, "", false)
	if cfg2.Output.Format != "table" || cfg2.Debug {
		t.Errorf("empty flags changed config: format=%q debug=%v", cfg2.Output.Format, cfg2.Debug)
	}
}

func TestProfileURL(t *testing.T) {
	cfg := NewDefaultConfig()

	if got := cfg.ProfileURL("investor1"); got != "https://www.etoro.com/people/investor1" {
		t.Errorf("ProfileURL = %q", got)
	}

	// Usernames are path-escaped, never interpolated raw
	if got := cfg.ProfileURL("a b/c"); !strings.Contains(got, "a%20b") {
		t.Errorf("ProfileURL did not escape username: %q", got)
	}

	// Trailing slash on base_url does not double up
	cfg.Etoro.BaseURL = "http://localhost:8080/"
	if got := cfg.ProfileURL("x"); got != "http://localhost:8080/people/x" {
		t.Errorf("ProfileURL with trailing slash = %q", got)
	}
}

func TestGetTimeout(t *testing.T) {
	cfg := BrowserConfig{TimeoutSeconds: 45}
	if got := cfg.GetTimeout(); got != 45*time.Second {
		t.Errorf("GetTimeout = %v, want 45s", got)
	}

	zero := BrowserConfig{}
	if got := zero.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout fallback = %v, want 30s", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Etoro.BaseURL = ""
	cfg.Etoro.ProfilePath = "/people/someone"
	cfg.Output.Format = "yaml"

	issues := cfg.Validate()
	if len(issues) != 3 {
		t.Fatalf("Validate returned %d issues, want 3: %v", len(issues), issues)
	}
}
