package server

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-webfetch/fetcher"
	"github.com/cnosuke/mcp-webfetch/types"
)

// RegisterFetchPrompt - Register the fetch prompt. The prompt is the manual
// surface: the user typed the URL themselves, so the robots.txt check is
// skipped and the manual identity is sent.
func RegisterFetchPrompt(mcpServer *server.MCPServer, f fetcher.Fetcher) error {
	zap.S().Debugw("registering fetch prompt")

	prompt := mcp.NewPrompt("fetch",
		mcp.WithPromptDescription("Fetch a URL and extract its contents as markdown"),
		mcp.WithArgument("url",
			mcp.ArgumentDescription("URL to fetch"),
			mcp.RequiredArgument(),
		),
	)

	mcpServer.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		url := request.Params.Arguments["url"]
		if url == "" {
			return nil, errors.New("url is required")
		}

		zap.S().Infow("executing fetch prompt", "url", url)

		req := &types.FetchRequest{URL: url}
		content, err := f.Fetch(ctx, req, types.ModeManual)
		if err != nil {
			zap.S().Errorw("failed to fetch URL for prompt", "url", url, "error", err)
			// The prompt still resolves; the failure text is the message body.
			return mcp.NewGetPromptResult(
				fmt.Sprintf("Failed to fetch %s", url),
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(err.Error())),
				},
			), nil
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("Contents of %s", url),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(content)),
			},
		), nil
	})

	return nil
}
