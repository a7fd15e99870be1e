package render

import (
	"strings"
	"testing"

	"github.com/my4ng/pugio/pkg/coloring"
	"github.com/my4ng/pugio/pkg/graph"
	"github.com/my4ng/pugio/pkg/metrics"
)

// diamond builds root -> a, root -> b, a -> d, b -> d with fixed sizes.
func diamond(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, name := range []string{"root", "a", "b", "d"} {
		g.AddNode(name+" v1.0.0", len(name))
	}
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	g.SetSizes(map[string]uint64{"root": 100, "a": 50, "b": 30, "d": 40})
	return g
}

func mustTemplates(t *testing.T) *Templates {
	t.Helper()
	tmpl, err := NewTemplates(TemplateOptions{})
	if err != nil {
		t.Fatalf("NewTemplates: %v", err)
	}
	return tmpl
}

func TestToDOTStructure(t *testing.T) {
	g := diamond(t)
	dot := ToDOT(g, DotOptions{}, mustTemplates(t))

	for _, want := range []string{
		"digraph pugio {",
		"nodesep=0.35",
		"ranksep=0.7",
		"fontsize=15",       // 4 nodes, count factor 0
		"arrowsize=0.6",
		`label="root"`,
		`fillcolor="#ffffff"`, // no metric values
		"0 -> 1 [",
		"2 -> 3 [",
		`edgetooltip="a -> d"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "bgcolor") {
		t.Error("light mode should not set a background color")
	}
	if strings.Contains(dot, "class=") {
		t.Error("highlight off should emit no class attributes")
	}
}

func TestToDOTDarkMode(t *testing.T) {
	g := diamond(t)
	dot := ToDOT(g, DotOptions{DarkMode: true}, mustTemplates(t))

	for _, want := range []string{
		`bgcolor="#000000"`,
		`fillcolor="#000000"`,
		`color="#FFFFFF9F"`,
		`fontcolor="#FFFFFF"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("dark DOT missing %q", want)
		}
	}
}

func TestToDOTScaling(t *testing.T) {
	g := diamond(t)
	dot := ToDOT(g, DotOptions{ScaleFactor: 2, SeparationFactor: 2, Padding: 3}, mustTemplates(t))

	for _, want := range []string{
		"fontsize=30",
		"arrowsize=1.2",
		"nodesep=0.7",
		"ranksep=1.4",
		"pad=3",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("scaled DOT missing %q", want)
		}
	}
}

func TestToDOTMetricFill(t *testing.T) {
	g := diamond(t)
	values := metrics.CumulativeSizes(g)
	dot := ToDOT(g, DotOptions{Values: values, Gradient: coloring.Reds}, mustTemplates(t))

	// The root holds the maximum, so it lands on the gradient's high end.
	if !strings.Contains(dot, `fillcolor="#67000d"`) {
		t.Errorf("DOT missing the high-end fill:\n%s", dot)
	}
	if strings.Contains(dot, `fillcolor="#ffffff"`) {
		t.Error("no node should fall back to the plain background fill")
	}
}

func TestToDOTHighlightDown(t *testing.T) {
	g := diamond(t)
	dot := ToDOT(g, DotOptions{Highlight: HighlightDown}, mustTemplates(t))

	if !strings.Contains(dot, `0 [class="node0", `) {
		t.Errorf("root node class missing:\n%s", dot)
	}
	// Edges carry the class set of their source.
	if !strings.Contains(dot, `1 -> 3 [class="node0 node1", `) {
		t.Errorf("edge 1->3 should carry node1's downward classes:\n%s", dot)
	}
}

func TestToDOTHighlightUp(t *testing.T) {
	g := diamond(t)
	dot := ToDOT(g, DotOptions{Highlight: HighlightUp}, mustTemplates(t))

	// Edges carry the class set of their target when highlighting upward.
	if !strings.Contains(dot, `0 -> 1 [class="node1 node3", `) {
		t.Errorf("edge 0->1 should carry node1's upward classes:\n%s", dot)
	}
}
