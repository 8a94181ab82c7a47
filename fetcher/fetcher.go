package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	ierrors "github.com/cnosuke/mcp-webfetch/internal/errors"
	"github.com/cnosuke/mcp-webfetch/robots"
	"github.com/cnosuke/mcp-webfetch/simplify"
	"github.com/cnosuke/mcp-webfetch/types"
)

// Config - Settings shared by both network calls of a fetch.
type Config struct {
	Timeout             int // seconds, per network call
	DefaultMaxLength    int
	ProxyURL            string
	IgnoreRobots        bool
	AutonomousUserAgent string
	ManualUserAgent     string
}

// Fetcher defines the interface for the fetch pipeline: validate the request,
// consult robots.txt when operating autonomously, retrieve the content,
// classify it, and slice the requested window.
type Fetcher interface {
	Fetch(ctx context.Context, req *types.FetchRequest, mode types.Mode) (string, error)
}

// NewHTTPClient builds the client used for both the robots.txt check and the
// content retrieval: fixed timeout, optional proxy, redirects capped at 10.
func NewHTTPClient(timeoutSec int, proxyURL string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			return nil, ierrors.Wrapf(err, "invalid proxy URL %s", proxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}
	return &http.Client{
		Timeout:   time.Duration(timeoutSec) * time.Second,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}, nil
}

// Retriever performs the authorized HTTP GET and returns the raw body with
// its content type.
type Retriever struct {
	client *http.Client
}

// NewRetriever - Create a content retriever backed by the given HTTP client.
func NewRetriever(client *http.Client) *Retriever {
	return &Retriever{client: client}
}

// Retrieve issues the GET with the chosen actor identity. Error statuses and
// transport failures are reported as fetch failures with the URL and, when
// known, the status code in the message.
func (r *Retriever) Retrieve(ctx context.Context, urlStr string, userAgent string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", "", ierrors.Mark(ierrors.Wrapf(err, "failed to create request for %s", urlStr), types.ErrFetchFailed)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", "", ierrors.Mark(ierrors.Wrapf(err, "failed to fetch %s", urlStr), types.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", "", ierrors.Mark(
			errors.Newf("failed to fetch %s - status code %d", urlStr, resp.StatusCode),
			types.ErrFetchFailed)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", ierrors.Mark(ierrors.Wrapf(err, "failed to read response body from %s", urlStr), types.ErrFetchFailed)
	}

	contentType := resp.Header.Get("Content-Type")
	zap.S().Debugw("response received",
		"url", urlStr,
		"status", resp.StatusCode,
		"bytes", len(body),
		"content_type", contentType,
	)
	return string(body), contentType, nil
}

// pipeline implements Fetcher.
type pipeline struct {
	retriever        *Retriever
	policy           *robots.Policy
	classifier       *simplify.Classifier
	defaultMaxLength int
	ignoreRobots     bool
	autonomousUA     string
	manualUA         string
}

// NewPipeline - Assemble the fetch pipeline from the shared client config and
// an injected simplifier.
func NewPipeline(cfg *Config, simplifier simplify.Simplifier) (Fetcher, error) {
	zap.S().Infow("creating fetch pipeline",
		"timeout", cfg.Timeout,
		"default_max_length", cfg.DefaultMaxLength,
		"proxy_url", cfg.ProxyURL,
		"ignore_robots", cfg.IgnoreRobots)

	client, err := NewHTTPClient(cfg.Timeout, cfg.ProxyURL)
	if err != nil {
		return nil, err
	}

	defaultMaxLength := cfg.DefaultMaxLength
	if defaultMaxLength <= 0 {
		defaultMaxLength = types.DefaultMaxLength
	}

	return &pipeline{
		retriever:        NewRetriever(client),
		policy:           robots.NewPolicy(client),
		classifier:       simplify.NewClassifier(simplifier),
		defaultMaxLength: defaultMaxLength,
		ignoreRobots:     cfg.IgnoreRobots,
		autonomousUA:     cfg.AutonomousUserAgent,
		manualUA:         cfg.ManualUserAgent,
	}, nil
}

// Fetch runs the linear pipeline. Policy and retrieval failures abort it
// unchanged; classification never fails.
func (p *pipeline) Fetch(ctx context.Context, req *types.FetchRequest, mode types.Mode) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	// Resolve the three-state optionals exactly once. An explicit zero or
	// false survives; only absence and null fall back to defaults.
	maxLength := p.defaultMaxLength
	if req.MaxLength != nil {
		maxLength = *req.MaxLength
	}
	startIndex := 0
	if req.StartIndex != nil {
		startIndex = *req.StartIndex
	}
	raw := req.Raw != nil && *req.Raw

	userAgent := p.autonomousUA
	if mode == types.ModeManual {
		userAgent = p.manualUA
	}

	zap.S().Debugw("fetching URL",
		"url", req.URL,
		"mode", mode.String(),
		"max_length", maxLength,
		"start_index", startIndex,
		"raw", raw)

	if mode == types.ModeAutonomous && !p.ignoreRobots {
		if err := p.policy.Check(ctx, req.URL, userAgent); err != nil {
			return "", err
		}
	}

	body, contentType, err := p.retriever.Retrieve(ctx, req.URL, userAgent)
	if err != nil {
		return "", err
	}

	result := p.classifier.Classify(body, contentType, raw, req.URL)

	window, remaining := sliceContent(result.Content, startIndex, maxLength)
	out := result.Prefix + window
	if remaining {
		next := startIndex + maxLength
		out += fmt.Sprintf(
			"\n\n<error>Content truncated. Call the fetch tool with a start_index of %d to get more content.</error>",
			next)
	}
	return out, nil
}

// sliceContent returns the window [startIndex, startIndex+maxLength) clipped
// to the content, and whether content remains beyond the window. Indices
// count characters, not bytes, so multi-byte content never splits mid-rune
// and the resume index stays on a character boundary.
func sliceContent(content string, startIndex int, maxLength int) (string, bool) {
	runes := []rune(content)
	if startIndex >= len(runes) {
		return "", false
	}
	end := startIndex + maxLength
	if end >= len(runes) {
		return string(runes[startIndex:]), false
	}
	return string(runes[startIndex:end]), true
}
