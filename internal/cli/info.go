package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snowdex/snowdex/pkg/catalog"
	errs "github.com/snowdex/snowdex/pkg/errors"
)

// infoCommand creates the info command for showing a single package.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show one package with install commands and links",
		Long: `Show one package with install commands and links.

The package is matched by name, case-insensitively. Install commands
are printed for pip and conda, with pinned variants when the version
is known.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := errs.ValidateCondaPackageName(name); err != nil {
				return err
			}

			sess, _, err := c.newSession()
			if err != nil {
				return err
			}

			spinner := newSpinner(cmd.Context(), "Fetching channel listing...")
			spinner.Start()
			rec, ok, err := sess.Find(cmd.Context(), name)
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("look up %s: %w", name, err)
			}
			if !ok {
				return errs.New(errs.ErrCodePackageNotFound, "package %q not found in the channel", name)
			}

			fmt.Println(renderPackageCard(rec))
			return nil
		},
	}
}

// renderPackageCard renders the detail view for one record.
func renderPackageCard(rec catalog.Record) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(displayText(rec.Name)))
	if rec.Version != "" {
		b.WriteString(" " + StyleDim.Render(displayText(rec.Version)))
	}
	b.WriteString("\n")

	if rec.Summary != "" {
		b.WriteString(StyleValue.Render(displayText(rec.Summary)))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("License: ") + StyleValue.Render(displayText(rec.License)))
	b.WriteString("\n")

	if rec.Install.Pip != "" {
		b.WriteString("\n" + StyleTitle.Render("Install") + "\n")
		b.WriteString("  " + styleCommand.Render(rec.Install.Pip) + "\n")
		if rec.Install.PipPinned != "" {
			b.WriteString("  " + styleCommand.Render(rec.Install.PipPinned) + "\n")
		}
		b.WriteString("  " + styleCommand.Render(rec.Install.Conda) + "\n")
		if rec.Install.CondaPinned != "" {
			b.WriteString("  " + styleCommand.Render(rec.Install.CondaPinned) + "\n")
		}
	}

	if rec.HasLinks() {
		b.WriteString("\n" + StyleTitle.Render("Links") + "\n")
		if rec.DocURL != "" {
			b.WriteString("  " + StyleDim.Render("Docs    ") + StyleLink.Render(rec.DocURL) + "\n")
		}
		if rec.SourceURL != "" {
			b.WriteString("  " + StyleDim.Render("Source  ") + StyleLink.Render(rec.SourceURL) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
