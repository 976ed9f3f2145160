package config

// defaultUserAgent presents a plain Linux desktop Chrome. Headless Chrome's
// own UA string advertises automation, which the target site reacts to.
const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Debug: false,
		Etoro: EtoroConfig{
			BaseURL:         "https://www.etoro.com",
			ProfilePath:     "/people/{username}",
			DefaultUsername: "",
		},
		Browser: BrowserConfig{
			Headless:       true,
			TimeoutSeconds: 30,
			UserAgent:      defaultUserAgent,
		},
		Output: OutputConfig{
			Format:   "table",
			DebugDir: ".",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/etoro-extractor.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}
