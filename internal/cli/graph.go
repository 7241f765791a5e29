package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	tileio "github.com/tilegarden/tilegarden/pkg/io"
	"github.com/tilegarden/tilegarden/pkg/render/constraintgraph"
)

// graphCommand creates the graph command for constraint graph export.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		svg    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [problem-file]",
		Short: "Export the constraint graph as DOT or SVG",
		Long: `Export the constraint graph as DOT or SVG.

Each placement variable becomes a node labeled with its footprint anchor and
initial domain size. The graph is complete because all placements share the
tile inventory and the visibility targets, so this is most readable for
small landscapes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apperrors.ValidatePath(args[0]); err != nil {
				return err
			}

			p, err := tileio.Import(args[0])
			if err != nil {
				return err
			}
			dot := constraintgraph.ToDOT(p)

			if !svg {
				if output == "" {
					fmt.Fprint(cmd.OutOrStdout(), dot)
					return nil
				}
				if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Exported constraint graph")
				printFile(output)
				return nil
			}

			data, err := constraintgraph.RenderSVG(dot)
			if err != nil {
				return fmt.Errorf("render SVG: %w", err)
			}
			if output == "" {
				output = defaultArtifactPath(args[0], "svg")
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered constraint graph")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG via Graphviz instead of printing DOT")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (DOT defaults to stdout)")

	return cmd
}
