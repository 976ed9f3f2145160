package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
)

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport"` // stdio or http
	Port      string `toml:"port"`
}

// Config holds all etoro-mcp configuration. The [etoro], [browser], and
// [output] sections are shared with the CLI so one TOML file drives both
// binaries.
type Config struct {
	Server    ServerConfig         `toml:"server"`
	Extractor config.Config        `toml:"extractor"`
	Logging   config.LoggingConfig `toml:"logging"`
}

func newDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Name:      "eToro-Extractor-MCP",
			Transport: "stdio",
			Port:      "4250",
		},
		Extractor: *config.NewDefaultConfig(),
		Logging: config.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"file"},
			FilePath:   "logs/etoro-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// loadConfig loads configuration from a TOML file with defaults and env
// overrides. A missing file is fine; a malformed one is fatal.
func loadConfig(path string) Config {
	cfg := newDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Fatalf("Failed to read config file %s: %v", path, err)
			}
		} else {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				log.Fatalf("Failed to parse config file %s: %v", path, err)
			}
		}
	}

	if transport := os.Getenv("ETORO_MCP_TRANSPORT"); transport != "" {
		cfg.Server.Transport = transport
	}
	if port := os.Getenv("ETORO_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if user := os.Getenv("ETORO_DEFAULT_USERNAME"); user != "" {
		cfg.Extractor.Etoro.DefaultUsername = user
	}
	if chrome := os.Getenv("CHROME_PATH"); chrome != "" {
		cfg.Extractor.Browser.ChromePath = chrome
	}
	if remote := os.Getenv("BROWSER_REMOTE_URL"); remote != "" {
		cfg.Extractor.Browser.RemoteURL = remote
	}

	return cfg
}

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "etoro-mcp.toml", "Path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg := loadConfig(*configFile)

	// stdio owns stdout for the protocol, so console logging is off unless
	// explicitly configured otherwise.
	logger := common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})

	svc := newToolService(&cfg.Extractor, logger)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)

	registerTools(mcpServer, svc)

	if *stdio || cfg.Server.Transport == "stdio" {
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	logger.Info().Str("port", port).Msg("starting MCP streamable HTTP server")
	fmt.Fprintf(os.Stderr, "Starting MCP Streamable HTTP on :%s\n", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
