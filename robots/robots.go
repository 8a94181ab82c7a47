// Package robots decides whether an autonomous fetch of a URL is permitted
// by the target site's robots exclusion ruleset.
package robots

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"

	ierrors "github.com/cnosuke/mcp-webfetch/internal/errors"
	"github.com/cnosuke/mcp-webfetch/types"
)

// Policy evaluates robots.txt for target URLs. The client is shared with the
// content retriever so proxy and timeout settings apply to both network calls.
type Policy struct {
	client *http.Client
}

// NewPolicy - Create a robots.txt policy backed by the given HTTP client.
func NewPolicy(client *http.Client) *Policy {
	return &Policy{client: client}
}

// RobotsTxtURL derives the robots.txt location for a target URL: same scheme,
// host and port, path replaced with /robots.txt, query string, fragment and
// userinfo discarded.
func RobotsTxtURL(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", ierrors.Wrapf(err, "failed to parse URL %s", target)
	}
	robotsURL := &url.URL{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   "/robots.txt",
	}
	return robotsURL.String(), nil
}

// Check returns nil when the actor identified by userAgent may autonomously
// fetch targetURL. Any failure to retrieve or evaluate robots.txt denies the
// fetch: the policy fails closed.
func (p *Policy) Check(ctx context.Context, targetURL string, userAgent string) error {
	robotsURL, err := RobotsTxtURL(targetURL)
	if err != nil {
		return ierrors.Mark(err, types.ErrPermissionDenied)
	}

	zap.S().Debugw("checking robots.txt", "target", targetURL, "robots_url", robotsURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return ierrors.Mark(ierrors.Wrapf(err, "failed to create request for %s", robotsURL), types.ErrPermissionDenied)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return ierrors.Mark(
			ierrors.Wrapf(err, "failed to fetch robots.txt %s due to a connection issue", robotsURL),
			types.ErrPermissionDenied)
	}
	defer resp.Body.Close()

	zap.S().Debugw("robots.txt response", "robots_url", robotsURL, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ierrors.Mark(
			errors.Newf("autonomous fetching is not allowed: robots.txt %s returned status %d",
				robotsURL, resp.StatusCode),
			types.ErrPermissionDenied)
	case resp.StatusCode == http.StatusNotFound:
		// No robots.txt means no restrictions.
		return nil
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return ierrors.Mark(
				ierrors.Wrapf(err, "failed to read robots.txt %s", robotsURL),
				types.ErrPermissionDenied)
		}
		return p.evaluate(body, targetURL, robotsURL, userAgent)
	default:
		return ierrors.Mark(
			errors.Newf("failed to fetch robots.txt %s due to a connection issue: unexpected status %d",
				robotsURL, resp.StatusCode),
			types.ErrPermissionDenied)
	}
}

// evaluate parses the ruleset and tests the exact target path for the actor's
// user-agent group.
func (p *Policy) evaluate(body []byte, targetURL, robotsURL, userAgent string) error {
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		// Unparseable rules deny the fetch rather than silently allowing it.
		return ierrors.Mark(
			ierrors.Wrapf(err, "failed to parse robots.txt %s", robotsURL),
			types.ErrPermissionDenied)
	}

	u, err := url.Parse(targetURL)
	if err != nil {
		return ierrors.Mark(ierrors.Wrapf(err, "failed to parse URL %s", targetURL), types.ErrPermissionDenied)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	if !data.TestAgent(path, userAgent) {
		zap.S().Infow("robots.txt disallows autonomous fetch",
			"target", targetURL,
			"robots_url", robotsURL,
			"user_agent", userAgent)
		return ierrors.Mark(
			errors.Newf("the site's robots.txt (%s) specifies that autonomous fetching of %s is not allowed",
				robotsURL, targetURL),
			types.ErrPermissionDenied)
	}
	return nil
}
