package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tilegarden/tilegarden/pkg/csp"
	"github.com/tilegarden/tilegarden/pkg/landscape"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	tileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	outcomeStyle = map[string]lipgloss.Style{
		"solved":      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		"no-solution": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		"aborted":     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}

	// One style per bush color, indexed by landscape.Color.
	bushStyles = [landscape.MaxColor + 1]lipgloss.Style{
		1: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // green
		2: lipgloss.NewStyle().Foreground(lipgloss.Color("220")), // yellow
		3: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		4: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
	}
)

// Pretty renders the solve report with ANSI colors: bushes in their color,
// tiles dimmed, and the outcome highlighted. Content matches [Text].
func Pretty(p *csp.Problem, res csp.Result) string {
	var sb strings.Builder

	style, ok := outcomeStyle[res.Outcome.String()]
	if !ok {
		style = headerStyle
	}
	fmt.Fprintf(&sb, "%s %s\n", headerStyle.Render("Outcome:"), style.Render(res.Outcome.String()))
	fmt.Fprintf(&sb, "Nodes: %d, backtracks: %d, prunings: %d (%s)\n",
		res.Stats.Nodes, res.Stats.Backtracks, res.Stats.Prunings, res.Stats.Duration)

	if res.Solution == nil {
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(prettyVisual(p, res.Solution))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Tile Usage:"))
	sb.WriteString("\n")
	sb.WriteString(Usage(p, res.Solution))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Visibility:"))
	sb.WriteString("\n")
	sb.WriteString(Visibility(p, res.Solution))
	sb.WriteString("\n")
	return sb.String()
}

// prettyVisual is the colored counterpart of [Visual].
func prettyVisual(p *csp.Problem, sol *csp.Solution) string {
	land := p.Landscape()
	var sb strings.Builder
	for row := 0; row < land.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < land.Width(); col++ {
			if col > 0 && col%csp.TileSize == 0 {
				sb.WriteByte(' ')
			}
			v := sol.At(row/csp.TileSize, col/csp.TileSize, p.GridWidth())
			color := land.At(row, col)
			switch {
			case v.Covers(row%csp.TileSize, col%csp.TileSize):
				sb.WriteString(tileStyle.Render("█"))
			case color != landscape.None:
				sb.WriteString(bushStyles[color].Render(string('0' + byte(color))))
			default:
				sb.WriteString(emptyStyle.Render("·"))
			}
		}
	}
	return sb.String()
}
