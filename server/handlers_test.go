package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnosuke/mcp-webfetch/fetcher"
	"github.com/cnosuke/mcp-webfetch/types"
)

// MockFetcher records the request it was handed and returns canned output.
type MockFetcher struct {
	lastRequest *types.FetchRequest
	lastMode    types.Mode
	output      string
	err         error
}

func (f *MockFetcher) Fetch(ctx context.Context, req *types.FetchRequest, mode types.Mode) (string, error) {
	f.lastRequest = req
	f.lastMode = mode
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

var _ fetcher.Fetcher = (*MockFetcher)(nil)

func TestParseFetchRequest_AllFieldsPresent(t *testing.T) {
	req, err := parseFetchRequest(map[string]any{
		"url":         "https://example.com/page",
		"max_length":  float64(100),
		"start_index": float64(10),
		"raw":         true,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/page", req.URL)
	require.NotNil(t, req.MaxLength)
	assert.Equal(t, 100, *req.MaxLength)
	require.NotNil(t, req.StartIndex)
	assert.Equal(t, 10, *req.StartIndex)
	require.NotNil(t, req.Raw)
	assert.True(t, *req.Raw)
}

func TestParseFetchRequest_OptionalsAbsent(t *testing.T) {
	req, err := parseFetchRequest(map[string]any{"url": "https://example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", req.URL)
	assert.Nil(t, req.MaxLength)
	assert.Nil(t, req.StartIndex)
	assert.Nil(t, req.Raw)
}

func TestParseFetchRequest_ExplicitNullEqualsAbsent(t *testing.T) {
	req, err := parseFetchRequest(map[string]any{
		"url":         "https://example.com",
		"max_length":  nil,
		"start_index": nil,
		"raw":         nil,
	})
	require.NoError(t, err)

	assert.Nil(t, req.MaxLength)
	assert.Nil(t, req.StartIndex)
	assert.Nil(t, req.Raw)
}

func TestParseFetchRequest_ExplicitZeroIsKept(t *testing.T) {
	// start_index=0 and raw=false are real values, not absence.
	req, err := parseFetchRequest(map[string]any{
		"url":         "https://example.com",
		"start_index": float64(0),
		"raw":         false,
	})
	require.NoError(t, err)

	require.NotNil(t, req.StartIndex)
	assert.Equal(t, 0, *req.StartIndex)
	require.NotNil(t, req.Raw)
	assert.False(t, *req.Raw)
}

func TestParseFetchRequest_WrongTypes(t *testing.T) {
	_, err := parseFetchRequest(map[string]any{"url": 42})
	assert.Error(t, err)

	_, err = parseFetchRequest(map[string]any{"url": "https://example.com", "max_length": "100"})
	assert.Error(t, err)

	_, err = parseFetchRequest(map[string]any{"url": "https://example.com", "start_index": "0"})
	assert.Error(t, err)

	_, err = parseFetchRequest(map[string]any{"url": "https://example.com", "raw": "true"})
	assert.Error(t, err)
}

func TestParseFetchRequest_FractionalNumbersRejected(t *testing.T) {
	_, err := parseFetchRequest(map[string]any{"url": "https://example.com", "max_length": 5.9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_length must be an integer")

	_, err = parseFetchRequest(map[string]any{"url": "https://example.com", "start_index": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_index must be an integer")

	// Integral floats are how JSON integers arrive; they still pass.
	req, err := parseFetchRequest(map[string]any{"url": "https://example.com", "max_length": float64(5)})
	require.NoError(t, err)
	require.NotNil(t, req.MaxLength)
	assert.Equal(t, 5, *req.MaxLength)
}

func TestParseFetchRequest_MissingURLFailsValidation(t *testing.T) {
	req, err := parseFetchRequest(map[string]any{})
	require.NoError(t, err)
	assert.Error(t, req.Validate())
}

func TestMockFetcher_ReceivesParsedRequest(t *testing.T) {
	mock := &MockFetcher{output: "content"}

	req, err := parseFetchRequest(map[string]any{
		"url":        "https://example.com",
		"max_length": float64(50),
	})
	require.NoError(t, err)

	out, err := mock.Fetch(context.Background(), req, types.ModeAutonomous)
	require.NoError(t, err)
	assert.Equal(t, "content", out)
	assert.Equal(t, types.ModeAutonomous, mock.lastMode)
	require.NotNil(t, mock.lastRequest.MaxLength)
	assert.Equal(t, 50, *mock.lastRequest.MaxLength)
	assert.Nil(t, mock.lastRequest.StartIndex)
}
