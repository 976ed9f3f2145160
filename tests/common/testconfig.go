// Package common holds shared test infrastructure: the containerized browser,
// the profile fixture server, and result/artifact directories.
package common

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TestConfig drives the integration test harness. Everything has a default;
// a test_config.toml next to the test or at the repo's tests/ dir overrides.
type TestConfig struct {
	Results struct {
		Dir string `toml:"dir"`
	} `toml:"results"`
	Browser struct {
		Image       string `toml:"image"`
		TimeoutSecs int    `toml:"timeout_seconds"`
	} `toml:"browser"`
}

var (
	globalConfig     *TestConfig
	globalConfigOnce sync.Once
	resultsDir       string
	resultsDirOnce   sync.Once
)

func LoadTestConfig() *TestConfig {
	globalConfigOnce.Do(func() {
		globalConfig = &TestConfig{}
		globalConfig.Results.Dir = "tests/results"
		globalConfig.Browser.Image = "chromedp/headless-shell:stable"
		globalConfig.Browser.TimeoutSecs = 60

		configPaths := []string{
			"test_config.toml",
			filepath.Join("tests", "test_config.toml"),
			filepath.Join("..", "test_config.toml"),
		}
		for _, path := range configPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := toml.Unmarshal(data, globalConfig); err == nil {
				return
			}
		}
	})
	return globalConfig
}

// GetResultsDir returns the directory test artifacts land in, creating it on
// first use. ETORO_TEST_RESULTS_DIR overrides for wrapper scripts.
func GetResultsDir() string {
	if dir := os.Getenv("ETORO_TEST_RESULTS_DIR"); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}
	resultsDirOnce.Do(func() {
		base := LoadTestConfig().Results.Dir
		stamp := time.Now().Format("2006-01-02-15-04-05")
		resultsDir = filepath.Join(base, stamp)
		if err := os.MkdirAll(resultsDir, 0755); err != nil {
			panic("failed to create results dir: " + err.Error())
		}
	})
	return resultsDir
}
