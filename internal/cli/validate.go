package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	tileio "github.com/tilegarden/tilegarden/pkg/io"
	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var tomlOut string

	cmd := &cobra.Command{
		Use:   "validate [problem-file]",
		Short: "Check a problem file without solving it",
		Long: `Check a problem file without solving it.

The validate command parses the file, runs all structural checks (grid
dimensions, inventory counts, target colors, target feasibility), and prints
a summary of the problem. Use --toml-out to convert a plain-text problem to
a TOML manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apperrors.ValidatePath(args[0]); err != nil {
				return err
			}

			p, err := tileio.Import(args[0])
			if err != nil {
				printError("Invalid problem file")
				return err
			}

			land := p.Landscape()
			inv := p.Inventory()
			printSuccess("Problem file is valid")
			printDetail("Landscape: %dx%d cells (%dx%d footprints)",
				land.Height(), land.Width(), p.GridHeight(), p.GridWidth())
			printDetail("Inventory: %d full, %d outer boundary, %d el-shape",
				inv.Full, inv.OuterBoundary, inv.EL)

			targets := p.Targets()
			colors := make([]int, 0, len(targets))
			for color := range targets {
				colors = append(colors, int(color))
			}
			sort.Ints(colors)
			for _, color := range colors {
				c := landscape.Color(color)
				printDetail("Target: color %d, %d of %d bushes visible",
					color, targets[c], p.BushTotal(c))
			}

			if tomlOut != "" {
				if err := tileio.ExportTOML(p, tomlOut); err != nil {
					return fmt.Errorf("export manifest: %w", err)
				}
				printFile(tomlOut)
			}

			printNextStep("Solve it", fmt.Sprintf("%s solve %s", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&tomlOut, "toml-out", "", "also write the problem as a TOML manifest")

	return cmd
}
