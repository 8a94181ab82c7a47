// Package simplify turns raw HTML into readable markdown and classifies
// fetched bodies into simplified or verbatim content.
package simplify

import (
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/cockroachdb/errors"

	ierrors "github.com/cnosuke/mcp-webfetch/internal/errors"
)

var errNoContent = errors.New("no readable content")

// Simplifier converts an HTML body into clean article text. Implementations
// return an error when no readable article can be extracted; callers are
// expected to degrade to the raw body rather than fail.
type Simplifier interface {
	Simplify(htmlBody string, sourceURL string) (string, error)
}

// readabilitySimplifier extracts the main article with readability and
// converts it to markdown.
type readabilitySimplifier struct{}

// NewReadabilitySimplifier - Create the production Simplifier.
func NewReadabilitySimplifier() Simplifier {
	return &readabilitySimplifier{}
}

func (s *readabilitySimplifier) Simplify(htmlBody string, sourceURL string) (string, error) {
	parsedURL, err := url.Parse(sourceURL)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to parse URL")
	}

	article, err := readability.FromReader(strings.NewReader(htmlBody), parsedURL)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to extract content with readability")
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", ierrors.Wrap(errNoContent, "page has no readable article")
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(article.Content)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to convert extracted content to Markdown")
	}

	// Add title as heading if available
	if article.Title != "" {
		markdown = "# " + article.Title + "\n\n" + markdown
	}

	zap.S().Debugw("simplified HTML content",
		"url", sourceURL,
		"title", article.Title,
		"length", len(markdown),
	)

	return markdown, nil
}
