package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/snowdex/snowdex/pkg/catalog"
	"github.com/snowdex/snowdex/pkg/explorer"
)

// fetchCommand creates the fetch command for loading the channel listing.
func (c *CLI) fetchCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the channel listing and show catalog statistics",
		Long: `Fetch the channel listing and show catalog statistics.

The listing is downloaded from the configured repository URL, cleaned
up, and summarized. Rows without a package name are dropped and counted
as skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := c.newSession()
			if err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), sess, refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch even when a cached catalog is still fresh")

	return cmd
}

// runFetch loads the catalog and prints its summary.
func (c *CLI) runFetch(ctx context.Context, sess *explorer.Session, refresh bool) error {
	c.Logger.Info("Fetching channel listing")

	prog := newProgress(c.Logger)
	var err error
	if refresh {
		err = sess.Refresh(ctx)
	}
	var stats catalog.Stats
	if err == nil {
		stats, err = sess.Stats(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetch listing: %w", err)
	}
	prog.done(fmt.Sprintf("Loaded %d packages", stats.TotalPackages))

	printSuccess("Catalog ready")
	printKeyValue("Source", stats.Source)
	printKeyValue("Packages", strconv.Itoa(stats.TotalPackages))
	printKeyValue("Licenses", strconv.Itoa(stats.UniqueLicenses))
	if stats.Skipped > 0 {
		printKeyValue("Skipped", fmt.Sprintf("%d malformed rows", stats.Skipped))
	}
	printKeyValue("Fetched", formatFetchedAt(stats.FetchedAt))
	return nil
}
