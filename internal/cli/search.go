package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/snowdex/snowdex/pkg/catalog"
	"github.com/snowdex/snowdex/pkg/explorer"
)

// searchCommand creates the search command for querying the catalog.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		license string
		page    int
	)

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search packages by name or summary",
		Long: `Search packages by name or summary.

Without a term, all packages are listed. Matching is case-insensitive
and substring-based over the package name and summary. Results are
paginated; combine --license and --page to narrow and navigate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := c.newSession()
			if err != nil {
				return err
			}

			term := ""
			if len(args) > 0 {
				term = args[0]
			}
			return c.runSearch(cmd.Context(), sess, term, license, page)
		},
	}

	cmd.Flags().StringVarP(&license, "license", "l", "", "only show packages with this exact license")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page to display")

	return cmd
}

// runSearch applies the filters and renders one result page.
func (c *CLI) runSearch(ctx context.Context, sess *explorer.Session, term, license string, pageNum int) error {
	sess.Search(term)
	if license != "" {
		sess.FilterByLicense(license)
	}
	sess.GoToPage(pageNum)

	spinner := newSpinner(ctx, "Fetching channel listing...")
	spinner.Start()
	page, err := sess.CurrentPage(ctx)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("search packages: %w", err)
	}

	if page.TotalMatches == 0 {
		printWarning("No packages match the current filters")
		return nil
	}

	fmt.Println(renderResultsTable(page))
	fmt.Println(StyleDim.Render(formatPageFooter(page)))
	return nil
}

// renderResultsTable renders one page of results as a bordered table.
func renderResultsTable(page catalog.Page) string {
	rows := make([][]string, len(page.Records))
	for i, rec := range page.Records {
		rows[i] = []string{
			rec.Name,
			displayText(rec.Version),
			displayText(rec.License),
			truncate(displayText(rec.Summary), 60),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(colorCyan)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Version", "License", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return nameStyle
			}
			return cellStyle
		}).
		Render()
}

// formatPageFooter describes the visible slice of the result set.
func formatPageFooter(page catalog.Page) string {
	return fmt.Sprintf("Page %d of %d · showing %d-%d of %d packages",
		page.Page, page.TotalPages, page.Start, page.End, page.TotalMatches)
}
