package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// licensesCommand creates the licenses command for listing license usage.
func (c *CLI) licensesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "licenses",
		Short: "List the licenses in the catalog with package counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := c.newSession()
			if err != nil {
				return err
			}

			spinner := newSpinner(cmd.Context(), "Fetching channel listing...")
			spinner.Start()
			counts, err := sess.LicenseCounts(cmd.Context())
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("list licenses: %w", err)
			}

			if len(counts) == 0 {
				printWarning("The catalog is empty")
				return nil
			}

			rows := make([][]string, len(counts))
			total := 0
			for i, lc := range counts {
				rows[i] = []string{displayText(lc.License), strconv.Itoa(lc.Count)}
				total += lc.Count
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			cellStyle := lipgloss.NewStyle().Foreground(colorWhite)

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("License", "Packages").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return cellStyle
				})

			fmt.Println(t.Render())
			fmt.Println(StyleDim.Render(fmt.Sprintf("%d licenses · %d packages", len(counts), total)))
			return nil
		},
	}
}
