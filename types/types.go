package types

import (
	"net/url"

	"github.com/cockroachdb/errors"
)

// DefaultMaxLength is the content window size used when max_length is omitted.
const DefaultMaxLength = 5000

// MaxLengthLimit is the exclusive upper bound for max_length.
const MaxLengthLimit = 1_000_000

// Classification sentinels for pipeline failures. Wrapped errors are tagged
// with errors.Mark so the transport layer can map them with errors.Is.
var (
	// ErrInvalidRequest - request construction failed before any I/O
	ErrInvalidRequest = errors.New("invalid request")
	// ErrPermissionDenied - robots.txt forbids the fetch, or could not be evaluated
	ErrPermissionDenied = errors.New("permission denied")
	// ErrFetchFailed - content retrieval returned an error status or transport failure
	ErrFetchFailed = errors.New("fetch failed")
)

// Mode - How the fetch was initiated
type Mode int

const (
	// ModeAutonomous - fetch initiated by automated reasoning; robots.txt is enforced
	ModeAutonomous Mode = iota
	// ModeManual - a human supplied this exact URL; robots.txt is bypassed
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "autonomous"
}

// FetchRequest - Validated parameter bag for a fetch operation.
// The optional fields are pointers so an explicitly supplied zero value
// (start_index=0, raw=false) stays distinct from an omitted or null one.
type FetchRequest struct {
	URL        string `json:"url"`
	MaxLength  *int   `json:"max_length,omitempty"`
	StartIndex *int   `json:"start_index,omitempty"`
	Raw        *bool  `json:"raw,omitempty"`
}

// Validate checks the request before any network call is made.
func (r *FetchRequest) Validate() error {
	if r.URL == "" {
		return errors.Mark(errors.New("url is required"), ErrInvalidRequest)
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "invalid url: %s", r.URL), ErrInvalidRequest)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Mark(errors.Newf("url must be http or https: %s", r.URL), ErrInvalidRequest)
	}
	if u.Host == "" {
		return errors.Mark(errors.Newf("url is missing a host: %s", r.URL), ErrInvalidRequest)
	}
	if r.MaxLength != nil && (*r.MaxLength <= 0 || *r.MaxLength >= MaxLengthLimit) {
		return errors.Mark(
			errors.Newf("max_length must be between 1 and %d, got %d", MaxLengthLimit-1, *r.MaxLength),
			ErrInvalidRequest)
	}
	if r.StartIndex != nil && *r.StartIndex < 0 {
		return errors.Mark(
			errors.Newf("start_index must not be negative, got %d", *r.StartIndex),
			ErrInvalidRequest)
	}
	return nil
}

// FetchResult - Output of content classification, before pagination.
// Prefix is empty when the content was simplified; otherwise it carries an
// explanatory note about why the body is returned verbatim.
type FetchResult struct {
	Content string `json:"content"`
	Prefix  string `json:"prefix,omitempty"`
}
