package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-webfetch/config"
	"github.com/cnosuke/mcp-webfetch/server"
)

var (
	// Version and Revision are replaced at build time
	Version  = "0.1.0"
	Revision = "xxx"

	name = "mcp-webfetch"
)

func main() {
	app := cli.NewApp()
	app.Name = name
	app.Version = fmt.Sprintf("%s (%s)", Version, Revision)
	app.Usage = "MCP server that fetches URLs and returns readable markdown"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the configuration file",
		},
		&cli.StringFlag{
			Name:  "proxy-url",
			Usage: "proxy URL applied to all outbound requests",
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Usage: "override the User-Agent string for both operating modes",
		},
		&cli.BoolFlag{
			Name:  "ignore-robots-txt",
			Usage: "skip robots.txt checks for all fetches",
		},
	}
	app.Action = func(c *cli.Context) error {
		// Stdout carries the MCP stdio transport; logs go to stderr.
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()
		zap.ReplaceGlobals(logger)

		cfg, err := config.LoadConfig(c.String("config"))
		if err != nil {
			zap.S().Errorw("failed to load config", "error", err)
			return err
		}

		applyOverrides(cfg, c.String("proxy-url"), c.String("user-agent"), c.Bool("ignore-robots-txt"))

		return server.Run(cfg, name, Version, Revision)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}

// applyOverrides applies command line flag values on top of the loaded
// config. The user-agent override replaces both mode identities, since the
// flag carries the caller's single identity regardless of how a fetch was
// initiated.
func applyOverrides(cfg *config.Config, proxyURL string, userAgent string, ignoreRobots bool) {
	if proxyURL != "" {
		cfg.Fetch.ProxyURL = proxyURL
	}
	if userAgent != "" {
		cfg.Fetch.AutonomousUserAgent = userAgent
		cfg.Fetch.ManualUserAgent = userAgent
	}
	if ignoreRobots {
		cfg.Fetch.IgnoreRobots = true
	}
}
