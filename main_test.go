package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnosuke/mcp-webfetch/config"
)

func TestApplyOverrides_UserAgentCoversBothModes(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	applyOverrides(cfg, "", "custom-agent/2.0 (+https://example.org)", false)

	assert.Equal(t, "custom-agent/2.0 (+https://example.org)", cfg.Fetch.AutonomousUserAgent)
	assert.Equal(t, "custom-agent/2.0 (+https://example.org)", cfg.Fetch.ManualUserAgent)
}

func TestApplyOverrides_EmptyFlagsKeepConfig(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	autonomous := cfg.Fetch.AutonomousUserAgent
	manual := cfg.Fetch.ManualUserAgent

	applyOverrides(cfg, "", "", false)

	assert.Equal(t, autonomous, cfg.Fetch.AutonomousUserAgent)
	assert.Equal(t, manual, cfg.Fetch.ManualUserAgent)
	assert.Empty(t, cfg.Fetch.ProxyURL)
	assert.False(t, cfg.Fetch.IgnoreRobots)
}

func TestApplyOverrides_ProxyAndIgnoreRobots(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	applyOverrides(cfg, "http://proxy.example.com:8080", "", true)

	assert.Equal(t, "http://proxy.example.com:8080", cfg.Fetch.ProxyURL)
	assert.True(t, cfg.Fetch.IgnoreRobots)
}
