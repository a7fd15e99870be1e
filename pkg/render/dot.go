// Package render turns a dependency graph into Graphviz DOT and renders
// it to SVG or PNG, with templated labels and optional interactive hover
// highlighting in the SVG output.
package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/my4ng/pugio/pkg/coloring"
	"github.com/my4ng/pugio/pkg/graph"
	"github.com/my4ng/pugio/pkg/metrics"
)

// Highlight selects the interactive hover-highlight behavior baked into
// the rendered graph.
type Highlight int

const (
	// HighlightOff emits no highlight classes.
	HighlightOff Highlight = iota
	// HighlightDown highlights a hovered crate and its transitive
	// dependencies.
	HighlightDown
	// HighlightUp highlights a hovered crate and its transitive
	// dependents.
	HighlightUp
)

// DotOptions configures DOT emission for a dependency graph.
type DotOptions struct {
	Highlight Highlight
	DarkMode  bool

	// Values colors nodes by metric; nil renders plain white (or black in
	// dark mode) fills.
	Values          *metrics.Values
	Gradient        coloring.Gradient
	InverseGradient bool

	// Layout scaling knobs, all defaulting to 1.
	ScaleFactor      float64
	SeparationFactor float64
	Padding          float64
}

// ToDOT converts a dependency graph to Graphviz DOT. Node identifiers are
// the graph's sparse indices; default attributes scale with node count so
// large graphs keep readable labels, and highlight classes carry each
// node's transitive closure for the hover CSS injected by InjectHighlight.
func ToDOT(g *graph.Graph, opts DotOptions, tmpl *Templates) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pugio {\n")
	writeDefaults(&buf, g.NodeCount(), opts)

	var classes [][]int
	if opts.Highlight != HighlightOff {
		classes = metrics.Classes(g, opts.Highlight == HighlightDown)
	}

	scheme := ""
	if opts.Values != nil {
		scheme = opts.Values.Scheme().String()
	}

	buf.WriteByte('\n')
	for _, index := range g.Indices() {
		node := g.Node(index)
		size, _ := g.Size(index)
		width := math.Log10(float64(size)/4096 + 1)

		var value uint64
		fill := coloring.Background(opts.DarkMode)
		if opts.Values != nil {
			value = opts.Values.Value(index)
			fill = opts.Gradient.Hex(opts.Values.Normalized(index), opts.DarkMode, opts.InverseGradient)
		}

		label, tooltip := tmpl.Node(node, size, value, scheme)
		fmt.Fprintf(&buf, "  %d [%slabel=%q, tooltip=%q, width=%g, fillcolor=%q];\n",
			index, classAttr(classes, index), label, tooltip, width, fill)
	}

	buf.WriteByte('\n')
	for _, from := range g.Indices() {
		for _, to := range g.Neighbors(from, true) {
			label, tooltip := tmpl.Edge(g.Node(from), g.Node(to), g.Edge(from, to))

			// The highlight class set of an edge follows the node whose
			// closure contains the other endpoint.
			classOwner := from
			if opts.Highlight == HighlightUp {
				classOwner = to
			}
			fmt.Fprintf(&buf, "  %d -> %d [%slabel=%q, edgetooltip=%q, labeltooltip=%q];\n",
				from, to, classAttr(classes, classOwner), label, tooltip, tooltip)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDefaults(buf *bytes.Buffer, nodeCount int, opts DotOptions) {
	scale := orOne(opts.ScaleFactor)
	sep := orOne(opts.SeparationFactor)
	pad := orOne(opts.Padding)

	countFactor := math.Floor(float64(nodeCount) / 32)
	nodeFontSize := (countFactor*3 + 15) * scale
	edgeFontSize := nodeFontSize * 0.75
	arrowSize := (countFactor*0.2 + 0.6) * scale
	edgeWidth := arrowSize * 2
	nodeBorderWidth := edgeWidth * 0.75
	nodeSep := 0.35 * sep
	rankSep := nodeSep * 2

	nodeColor, edgeColor, fontColor := "#000000", "#0000009F", "#000000"
	if opts.DarkMode {
		nodeColor, edgeColor, fontColor = "#FFFFFF", "#FFFFFF9F", "#FFFFFF"
		fmt.Fprintf(buf, "  bgcolor=\"#000000\";\n")
	}

	fmt.Fprintf(buf, "  pad=%g;\n  nodesep=%g;\n  ranksep=%g;\n", pad, nodeSep, rankSep)
	fmt.Fprintf(buf, "  node [shape=circle, style=filled, fixedsize=shape, fontname=monospace, fontsize=%g, penwidth=%g, color=%q, fontcolor=%q];\n",
		nodeFontSize, nodeBorderWidth, nodeColor, fontColor)
	fmt.Fprintf(buf, "  edge [fontname=monospace, fontsize=%g, arrowsize=%g, arrowhead=onormal, penwidth=%g, color=%q, fontcolor=%q];\n",
		edgeFontSize, arrowSize, edgeWidth, edgeColor, fontColor)
}

func classAttr(classes [][]int, index int) string {
	if classes == nil {
		return ""
	}
	var sb bytes.Buffer
	sb.WriteString(`class="`)
	for i, c := range classes[index] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "node%d", c)
	}
	sb.WriteString(`", `)
	return sb.String()
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
