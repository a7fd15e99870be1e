// Package pkg provides the core libraries for pugio dependency bloat
// visualization.
//
// # Overview
//
// Pugio runs cargo tree and cargo bloat over a Rust package and renders the
// dependency graph as an SVG where node size and color show where the
// compiled bytes come from. The pkg directory is organized by pipeline
// stage:
//
//  1. [cargo] - Run and parse cargo tree / cargo bloat output
//  2. [graph] - Dependency graph structure and reachability-preserving operations
//  3. [metrics] - Per-crate bloat metrics (cumulative size, dependency counts)
//  4. [coloring] - Color gradients over normalized metric values
//  5. [render] - DOT emission, Graphviz rendering, hover highlighting
//  6. [cache] - Lock-file-keyed memoization of cargo output
//
// # Architecture
//
// The typical data flow through pugio:
//
//	cargo tree / cargo bloat
//	         ↓
//	    [cargo] package (parse text tree and JSON sizes)
//	         ↓
//	    [graph] package (DAG + re-rooting, pruning, exclusion)
//	         ↓
//	    [metrics] package (apportioned sizes, counts, highlight classes)
//	         ↓
//	    [coloring] + [render] packages (gradient fills, DOT, SVG/PNG)
//
// # Quick Start
//
// Parse cargo output and render an SVG:
//
//	g, _ := cargo.ParseTree(treeOutput)
//	sizes, _ := cargo.ParseBloat(bloatOutput)
//	g.SetSizes(sizes)
//	g.NormalizeSizes()
//
//	values := metrics.CumulativeSizes(g)
//	tmpl, _ := render.NewTemplates(render.TemplateOptions{})
//	dot := render.ToDOT(g, render.DotOptions{Values: values}, tmpl)
//	svg, _ := render.RenderSVG(ctx, dot)
//
// [cargo]: https://pkg.go.dev/github.com/my4ng/pugio/pkg/cargo
// [graph]: https://pkg.go.dev/github.com/my4ng/pugio/pkg/graph
// [metrics]: https://pkg.go.dev/github.com/my4ng/pugio/pkg/metrics
// [coloring]: https://pkg.go.dev/github.com/my4ng/pugio/pkg/coloring
// [render]: https://pkg.go.dev/github.com/my4ng/pugio/pkg/render
// [cache]: https://pkg.go.dev/github.com/my4ng/pugio/pkg/cache
package pkg
