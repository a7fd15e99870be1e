package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ErrNoGraphElement is returned by InjectHighlight when the SVG does not
// contain the top-level graph group Graphviz emits.
var ErrNoGraphElement = errors.New("svg has no graph element to attach highlight rules to")

// RenderSVG lays out a DOT graph and renders it to SVG in-process.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG lays out a DOT graph and renders it to PNG in-process. PNG
// output is static; highlight classes are ignored.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// InjectHighlight inserts a style block ahead of the graph group that dims
// everything except a hovered node's class set. One rule per node index:
// hovering any element of class nodeN drops the opacity of every group not
// in that class. Relies on the CSS :has() pseudo-class, so the hover effect
// needs a reasonably modern browser; the SVG renders fine without one.
//
// amount is the highlight strength in [0, 1]; the dimmed opacity is its
// complement.
func InjectHighlight(svg []byte, indices []int, amount float64) ([]byte, error) {
	marker := []byte(`<g id="graph0"`)
	at := bytes.Index(svg, marker)
	if at < 0 {
		return nil, ErrNoGraphElement
	}

	if amount < 0 {
		amount = 0
	} else if amount > 1 {
		amount = 1
	}
	opacity := 1 - amount

	var style bytes.Buffer
	style.WriteString("<style>\n")
	for _, i := range indices {
		fmt.Fprintf(&style, ".graph:has(.node%d:hover) > g:not(.node%d) { opacity: %g }\n", i, i, opacity)
	}
	style.WriteString("</style>\n")

	out := make([]byte, 0, len(svg)+style.Len())
	out = append(out, svg[:at]...)
	out = append(out, style.Bytes()...)
	out = append(out, svg[at:]...)
	return out, nil
}
