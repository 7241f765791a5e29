package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	"github.com/tilegarden/tilegarden/pkg/pipeline"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		format  string
		output  string
		budget  int64
		refresh bool
		noCache bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "solve [problem-file]",
		Short: "Solve a tile placement problem",
		Long: `Solve a tile placement problem.

The solve command reads a problem file (plain text or a .toml manifest),
runs constraint propagation and backtracking search, and prints the result.

Solve results are cached locally, so re-solving the same problem with the
same node budget returns instantly. Use --refresh to force a fresh search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apperrors.ValidatePath(args[0]); err != nil {
				return err
			}
			if err := apperrors.ValidateFormat(format); err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{
				Path:       args[0],
				Format:     format,
				NodeBudget: budget,
				Refresh:    refresh,
				Logger:     c.Logger,
			}

			var result *pipeline.Result
			if watch {
				result, err = c.runWatchSolve(cmd.Context(), runner, opts)
			} else {
				spin := startSpinner(cmd.Context(), "Solving...")
				result, err = runner.Execute(cmd.Context(), opts)
				spin.stop()
			}
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(result.Artifact))
				return nil
			}

			if err := os.WriteFile(output, result.Artifact, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Solved %s (%s)", args[0], result.Solve.Outcome)
			printFile(output)
			printStats(result.Solve.Stats, result.CacheInfo.SolveHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatText, "output format: text (default), grid, json, pretty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the artifact to a file instead of stdout")
	cmd.Flags().Int64Var(&budget, "budget", 0, "node budget for the search (0 = default, negative = unlimited)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached solve results")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&watch, "watch", false, "show live search progress")

	return cmd
}
