package config

import (
	"github.com/jinzhu/configor"
)

// Config - Application configuration
type Config struct {
	Fetch struct {
		Timeout          int    `yaml:"timeout" default:"30" env:"FETCH_TIMEOUT"` // Timeout in seconds, per network call
		DefaultMaxLength int    `yaml:"default_max_length" default:"5000" env:"FETCH_DEFAULT_MAX_LENGTH"`
		ProxyURL         string `yaml:"proxy_url" env:"FETCH_PROXY_URL"`
		IgnoreRobots     bool   `yaml:"ignore_robots_txt" env:"FETCH_IGNORE_ROBOTS_TXT"` // Skip robots.txt checks for all fetches
		// Identity strings sent as the User-Agent header. The autonomous one is
		// used when the model picked the URL itself, the manual one when a human
		// supplied it.
		AutonomousUserAgent string `yaml:"autonomous_user_agent" default:"mcp-webfetch/1.0 (Autonomous; +https://github.com/cnosuke/mcp-webfetch)" env:"FETCH_AUTONOMOUS_USER_AGENT"`
		ManualUserAgent     string `yaml:"manual_user_agent" default:"mcp-webfetch/1.0 (User-Specified; +https://github.com/cnosuke/mcp-webfetch)" env:"FETCH_MANUAL_USER_AGENT"`
	} `yaml:"fetch"`
}

// LoadConfig - Load configuration file. An empty path loads defaults and
// environment variables only.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	loader := configor.New(&configor.Config{
		Debug:      false,
		Verbose:    false,
		Silent:     true,
		AutoReload: false,
	})

	var err error
	if path != "" {
		err = loader.Load(cfg, path)
	} else {
		err = loader.Load(cfg)
	}
	return cfg, err
}
