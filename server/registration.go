package server

import (
	"github.com/cnosuke/mcp-webfetch/config"
	"github.com/cnosuke/mcp-webfetch/fetcher"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterAllTools - Register all tools and prompts with the server
func RegisterAllTools(mcpServer *server.MCPServer, f fetcher.Fetcher, cfg *config.Config) error {
	// Register fetch tool (autonomous mode, robots.txt enforced)
	if err := RegisterFetchTool(mcpServer, f, cfg); err != nil {
		return err
	}

	// Register fetch prompt (manual mode, URL supplied by the user)
	if err := RegisterFetchPrompt(mcpServer, f); err != nil {
		return err
	}

	return nil
}
