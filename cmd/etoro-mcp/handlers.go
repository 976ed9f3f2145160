package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/etoro-extractor/internal/browser"
	"github.com/bobmcallan/etoro-extractor/internal/common"
	"github.com/bobmcallan/etoro-extractor/internal/config"
	"github.com/bobmcallan/etoro-extractor/internal/extract"
	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// toolService owns the shared extraction wiring. The function fields exist so
// tests can exercise handlers without a real browser.
type toolService struct {
	cfg    *config.Config
	logger *common.Logger

	runExtract func(ctx context.Context, username string) (*models.ExtractResult, error)
	probeOnce  func(ctx context.Context) error
}

func newToolService(cfg *config.Config, logger *common.Logger) *toolService {
	return &toolService{
		cfg:    cfg,
		logger: logger,
		runExtract: func(ctx context.Context, username string) (*models.ExtractResult, error) {
			return extract.New(cfg, logger).Portfolio(ctx, username)
		},
		probeOnce: func(ctx context.Context) error {
			session, err := browser.NewSession(ctx, cfg.Browser, logger)
			if err != nil {
				return err
			}
			session.Release()
			return nil
		},
	}
}

// --- Handlers ---

func handleGetVersion(svc *toolService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("eToro Extractor MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			config.GetVersion(), config.GetBuild(), config.GetGitCommit())
		return textResult(result), nil
	}
}

func handleGetPortfolio(svc *toolService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		username, err := request.RequireString("username")
		if err != nil {
			return errorResult("Error: username is required"), nil
		}
		format := request.GetString("format", "markdown")
		if format != "markdown" && format != "json" {
			return errorResult(fmt.Sprintf("Error: unknown format %q (want markdown or json)", format)), nil
		}

		result, err := svc.runExtract(ctx, username)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		if format == "json" {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return errorResult(fmt.Sprintf("Error encoding result: %v", err)), nil
			}
			return textResult(string(data)), nil
		}

		return textResult(formatExtractResult(result)), nil
	}
}

func handleCheckBrowser(svc *toolService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, cancel := context.WithTimeout(ctx, svc.cfg.Browser.GetTimeout())
		defer cancel()

		start := time.Now()
		if err := svc.probeOnce(ctx); err != nil {
			return errorResult(fmt.Sprintf("Browser check failed: %v\nInstall Chrome/Chromium or set CHROME_PATH.", err)), nil
		}
		return textResult(fmt.Sprintf("Browser launched and terminated cleanly in %s.", time.Since(start).Round(time.Millisecond))), nil
	}
}
