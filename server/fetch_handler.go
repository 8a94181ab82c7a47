package server

import (
	"context"
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-webfetch/config"
	"github.com/cnosuke/mcp-webfetch/fetcher"
	"github.com/cnosuke/mcp-webfetch/types"
)

// RegisterFetchTool - Register the fetch tool
func RegisterFetchTool(mcpServer *server.MCPServer, f fetcher.Fetcher, cfg *config.Config) error {
	zap.S().Debugw("registering fetch tool")

	// Define the tool
	tool := mcp.NewTool("fetch",
		mcp.WithDescription(fmt.Sprintf("Fetches a URL from the internet and extracts its contents as markdown. Default max_length is %d.", cfg.Fetch.DefaultMaxLength)),
		mcp.WithString("url",
			mcp.Description("URL to fetch"),
			mcp.Required(),
		),
		mcp.WithNumber("max_length",
			mcp.Description("Maximum number of characters to return"),
		),
		mcp.WithNumber("start_index",
			mcp.Description("Start content from this character index"),
		),
		mcp.WithBoolean("raw",
			mcp.Description("Get raw content without markdown conversion"),
		),
	)

	// Register the tool handler
	mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := parseFetchRequest(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Resolved parameter values are logged by the pipeline itself.
		zap.S().Infow("executing fetch", "url", req.URL)

		// The tool is the autonomous surface: no human picked this URL in-session.
		content, err := f.Fetch(ctx, req, types.ModeAutonomous)
		if err != nil {
			zap.S().Errorw("failed to fetch URL",
				"url", req.URL,
				"error", err)
			if errors.Is(err, types.ErrInvalidRequest) {
				return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %s", err.Error())), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Contents of %s:\n%s", req.URL, content)), nil
	})

	return nil
}

// parseFetchRequest maps the raw argument map onto a FetchRequest. An absent
// key and an explicit null both leave the optional pointer nil; a supplied
// zero or false is kept.
func parseFetchRequest(args map[string]any) (*types.FetchRequest, error) {
	req := &types.FetchRequest{}

	if v, ok := args["url"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("url must be a string")
		}
		req.URL = s
	}

	if v, ok := args["max_length"]; ok && v != nil {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, errors.New("max_length must be an integer")
		}
		maxLength := int(n)
		req.MaxLength = &maxLength
	}

	if v, ok := args["start_index"]; ok && v != nil {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, errors.New("start_index must be an integer")
		}
		startIndex := int(n)
		req.StartIndex = &startIndex
	}

	if v, ok := args["raw"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, errors.New("raw must be a boolean")
		}
		req.Raw = &b
	}

	return req, nil
}
