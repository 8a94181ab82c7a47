package simplify

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cnosuke/mcp-webfetch/types"
)

// Classifier decides whether a fetched body is handed to the Simplifier or
// returned verbatim. Classification never fails; when the simplifier cannot
// extract an article the raw body is returned with an explanatory prefix.
type Classifier struct {
	Simplifier Simplifier
}

// NewClassifier - Create a classifier around the given simplifier.
func NewClassifier(s Simplifier) *Classifier {
	return &Classifier{Simplifier: s}
}

// Classify branches on content type and the raw override. HTML content is
// simplified unless forceRaw is set; everything else is returned verbatim
// with a prefix naming the content type.
func (c *Classifier) Classify(body string, contentType string, forceRaw bool, sourceURL string) *types.FetchResult {
	isHTML := strings.Contains(strings.ToLower(contentType), "text/html")
	if !isHTML && !forceRaw {
		// Tolerant sniffing fallback for missing or wrong content types.
		trimmed := strings.TrimLeft(body, " \t\r\n")
		isHTML = strings.HasPrefix(strings.ToLower(trimmed), "<html")
	}

	if isHTML && !forceRaw {
		simplified, err := c.Simplifier.Simplify(body, sourceURL)
		if err != nil {
			zap.S().Warnw("simplification failed, returning raw content",
				"url", sourceURL, "error", err)
			return &types.FetchResult{
				Content: body,
				Prefix:  "Page failed to be simplified from HTML, raw content follows:\n",
			}
		}
		return &types.FetchResult{Content: simplified}
	}

	zap.S().Debugw("returning content verbatim",
		"url", sourceURL,
		"content_type", contentType,
		"force_raw", forceRaw)
	return &types.FetchResult{
		Content: body,
		Prefix:  fmt.Sprintf("Content type %s cannot be simplified to markdown, but here is the raw content:\n", contentType),
	}
}
