// Package constraintgraph renders the constraint graph of a tile placement
// problem: one node per placement variable, one edge per binary coupling
// arc. Because every placement shares the tile inventory and the visibility
// targets, the graph is complete; rendering it is mostly useful for small
// grids and for documentation.
package constraintgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/tilegarden/tilegarden/pkg/csp"
)

// ToDOT converts a problem's constraint graph to Graphviz DOT format.
// Node labels carry the footprint anchor and the initial domain size.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(p *csp.Problem) string {
	domains := csp.InitialDomains(p)

	var buf bytes.Buffer
	buf.WriteString("graph constraints {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for i := 0; i < p.NumPlacements(); i++ {
		pl := p.PlacementAt(i)
		fmt.Fprintf(&buf, "  p%d [label=\"(%d,%d)\\n|D|=%d\"];\n",
			i, pl.Row, pl.Col, domains[i].Count())
	}

	buf.WriteString("\n")
	for x := 0; x < p.NumPlacements(); x++ {
		for y := x + 1; y < p.NumPlacements(); y++ {
			fmt.Fprintf(&buf, "  p%d -- p%d;\n", x, y)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the <svg> tag so the viewBox starts at the
// origin and explicit pixel dimensions are present.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
