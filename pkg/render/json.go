package render

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tilegarden/tilegarden/pkg/csp"
)

// Artifact is the machine-readable form of a solve result.
type Artifact struct {
	Outcome string        `json:"outcome"`
	Stats   ArtifactStats `json:"stats"`

	// Solution is present only for solved runs.
	Solution *ArtifactSolution `json:"solution,omitempty"`
}

// ArtifactStats mirrors the search statistics.
type ArtifactStats struct {
	Nodes      int64 `json:"nodes"`
	Backtracks int64 `json:"backtracks"`
	Prunings   int64 `json:"prunings"`
	MaxDepth   int   `json:"max_depth"`
	DurationMS int64 `json:"duration_ms"`
}

// ArtifactSolution carries the placement grid and the derived counts.
type ArtifactSolution struct {
	GridHeight int            `json:"grid_height"`
	GridWidth  int            `json:"grid_width"`
	Values     []string       `json:"values"`
	Grid       []string       `json:"grid"`
	Visible    map[string]int `json:"visible"`
	Used       ArtifactUsage  `json:"used"`
}

// ArtifactUsage is the per-shape tile consumption.
type ArtifactUsage struct {
	FullBlock     int `json:"full_block"`
	OuterBoundary int `json:"outer_boundary"`
	ELShape       int `json:"el_shape"`
}

// BuildArtifact assembles the artifact for a solve result.
func BuildArtifact(p *csp.Problem, res csp.Result) Artifact {
	art := Artifact{
		Outcome: res.Outcome.String(),
		Stats: ArtifactStats{
			Nodes:      res.Stats.Nodes,
			Backtracks: res.Stats.Backtracks,
			Prunings:   res.Stats.Prunings,
			MaxDepth:   res.Stats.MaxDepth,
			DurationMS: res.Stats.Duration.Milliseconds(),
		},
	}
	if res.Solution == nil {
		return art
	}

	sol := res.Solution
	values := make([]string, len(sol.Values))
	for i, v := range sol.Values {
		values[i] = v.String()
	}
	grid := make([]string, p.GridHeight())
	for r := 0; r < p.GridHeight(); r++ {
		row := make([]byte, p.GridWidth())
		for c := 0; c < p.GridWidth(); c++ {
			row[c] = sol.At(r, c, p.GridWidth()).Symbol()
		}
		grid[r] = string(row)
	}
	visible := make(map[string]int, len(sol.Visible))
	for c, n := range sol.Visible {
		visible[strconv.Itoa(int(c))] = n
	}

	art.Solution = &ArtifactSolution{
		GridHeight: p.GridHeight(),
		GridWidth:  p.GridWidth(),
		Values:     values,
		Grid:       grid,
		Visible:    visible,
		Used: ArtifactUsage{
			FullBlock:     sol.Used.Full,
			OuterBoundary: sol.Used.OuterBoundary,
			ELShape:       sol.Used.EL,
		},
	}
	return art
}

// JSON renders a solve result as an indented JSON artifact.
func JSON(p *csp.Problem, res csp.Result) ([]byte, error) {
	data, err := json.MarshalIndent(BuildArtifact(p, res), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return append(data, '\n'), nil
}
