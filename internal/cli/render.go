package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	"github.com/tilegarden/tilegarden/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format  string
		output  string
		budget  int64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [problem-file]",
		Short: "Solve a problem and write the artifact to a file",
		Long: `Solve a problem and write the artifact to a file.

This is 'solve' with file output: the solve result comes from the cache when
available, and the artifact lands next to the problem file unless --output
names a different path. The default format is json, which round-trips into
other tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apperrors.ValidatePath(args[0]); err != nil {
				return err
			}
			if err := apperrors.ValidateFormat(format); err != nil {
				return err
			}
			if output == "" {
				output = defaultArtifactPath(args[0], format)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spin := startSpinner(cmd.Context(), "Rendering...")
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Path:       args[0],
				Format:     format,
				NodeBudget: budget,
				Logger:     c.Logger,
			})
			spin.stop()
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %s (%s)", args[0], result.Solve.Outcome)
			printFile(output)
			printStats(result.Solve.Stats, result.CacheInfo.SolveHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json (default), text, grid, pretty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: problem file with the format extension)")
	cmd.Flags().Int64Var(&budget, "budget", 0, "node budget for the search (0 = default, negative = unlimited)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// defaultArtifactPath derives the output path from the input file and format.
func defaultArtifactPath(input, format string) string {
	base := strings.TrimSuffix(input, ".txt")
	base = strings.TrimSuffix(base, ".toml")
	switch format {
	case pipeline.FormatText:
		return base + ".out.txt"
	case pipeline.FormatGrid:
		return base + ".grid.txt"
	case pipeline.FormatPretty:
		return base + ".pretty.txt"
	}
	return base + "." + format
}
