package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools registers all MCP tools on the server, wiring each to a
// handler over the extraction service.
func registerTools(s *server.MCPServer, svc *toolService) {
	s.AddTool(createGetVersionTool(), handleGetVersion(svc))
	s.AddTool(createGetPortfolioTool(), handleGetPortfolio(svc))
	s.AddTool(createCheckBrowserTool(), handleCheckBrowser(svc))
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the eToro extractor MCP server version and status. Use this to verify connectivity."),
	)
}

func createGetPortfolioTool() mcp.Tool {
	return mcp.NewTool("get_portfolio",
		mcp.WithDescription("Extract the public portfolio of an eToro user. Opens the profile page in a headless browser and returns the asset allocation table. Takes up to the configured browser timeout (default 30s). CAPTCHA challenges and missing/private profiles are reported in the response, not as errors."),
		mcp.WithString("username", mcp.Required(), mcp.Description("eToro username whose public portfolio to extract")),
		mcp.WithString("format", mcp.Description("Response format: 'markdown' (default) or 'json'")),
	)
}

func createCheckBrowserTool() mcp.Tool {
	return mcp.NewTool("check_browser",
		mcp.WithDescription("Verify that a Chrome/Chromium browser can be launched for extraction. Returns the outcome without visiting any site."),
	)
}
