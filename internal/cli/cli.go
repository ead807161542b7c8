// Package cli implements the snowdex command-line interface.
//
// This package provides commands for fetching the Snowflake Anaconda
// channel listing, searching and inspecting packages, browsing the
// catalog interactively, and serving it as a JSON API. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - fetch: Download the channel listing and show catalog statistics
//   - search: Search and filter packages, one page at a time
//   - info: Show one package with install commands and links
//   - licenses: List license values with package counts
//   - browse: Interactive terminal browser over the catalog
//   - serve: Host the catalog as a JSON API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// shared logger lives on the CLI struct and is wired into the catalog
// store, so cache staleness and refresh problems surface on stderr.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/snowdex/snowdex/pkg/buildinfo"
	"github.com/snowdex/snowdex/pkg/cache"
	"github.com/snowdex/snowdex/pkg/catalog"
	"github.com/snowdex/snowdex/pkg/config"
	"github.com/snowdex/snowdex/pkg/explorer"
	"github.com/snowdex/snowdex/pkg/index"
)

// appName is the application name used for directories and display.
const appName = "snowdex"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Snowdex explores the Snowflake Anaconda channel",
		Long:         `Snowdex fetches the Snowflake Anaconda channel listing and lets you search, filter, and inspect the available packages from the terminal or over a JSON API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file")

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.licensesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig resolves the configuration, honoring --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newStore builds the catalog store for cfg. Each CLI invocation is
// one process, so the TTL only matters within a single run.
func (c *CLI) newStore(cfg config.Config) *cache.Store {
	client := index.NewClient(cfg.RepoURL, cfg.FetchTimeout)
	refresh := func(ctx context.Context) (*catalog.Catalog, error) {
		return index.Load(ctx, client, cfg)
	}
	return cache.New(refresh, cfg.CacheDuration, cache.WithLogger(c.Logger))
}

// newSession wires an explorer session for one command run.
func (c *CLI) newSession() (*explorer.Session, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	return explorer.NewSession(c.newStore(cfg), cfg), cfg, nil
}
