package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"

	"github.com/my4ng/pugio/pkg/cache"
	"github.com/my4ng/pugio/pkg/cargo"
	"github.com/my4ng/pugio/pkg/coloring"
	"github.com/my4ng/pugio/pkg/graph"
	"github.com/my4ng/pugio/pkg/metrics"
	"github.com/my4ng/pugio/pkg/render"
)

// runPipeline drives the whole flow: cargo invocations (cached), graph
// construction, the configured graph operations, metric computation, and
// rendering.
func runPipeline(ctx context.Context, cfg *Config) error {
	logger := loggerFromContext(ctx)

	// Validate everything cheap before spending minutes in cargo.
	scheme, colored, err := parseScheme(cfg.Scheme)
	if err != nil {
		return err
	}
	gradient, err := coloring.ParseGradient(cfg.Gradient)
	if err != nil {
		return err
	}
	highlight, err := parseHighlight(cfg.Highlight)
	if err != nil {
		return err
	}
	threshold, err := parseThreshold(cfg.Threshold)
	if err != nil {
		return err
	}
	tmpl, err := render.NewTemplates(render.TemplateOptions{
		NodeLabel:   cfg.NodeLabelTemplate,
		NodeTooltip: cfg.NodeTooltipTemplate,
		EdgeLabel:   cfg.EdgeLabelTemplate,
		EdgeTooltip: cfg.EdgeTooltipTemplate,
	})
	if err != nil {
		return err
	}

	c := newCache(cfg.Refresh)
	defer c.Close()

	// The lock file participates in the cache key so a dependency bump
	// invalidates stale cargo output. Absence just weakens the key.
	lock, err := os.ReadFile("Cargo.lock")
	if err != nil {
		logger.Debug("no Cargo.lock found, cache keyed on options only")
	}

	opts := cargo.Options{
		Package:           cfg.Package,
		Bin:               cfg.Bin,
		Features:          cfg.Features,
		AllFeatures:       cfg.AllFeatures,
		NoDefaultFeatures: cfg.NoDefaultFeatures,
		Release:           cfg.Release,
	}

	treeOut, treeHit, err := cachedOutput(ctx, c, "tree", opts, lock, cargo.Tree,
		"Resolving dependency tree (cargo tree)...")
	if err != nil {
		return err
	}
	bloatOut, bloatHit, err := cachedOutput(ctx, c, "bloat", opts, lock, cargo.Bloat,
		"Building and measuring crates (cargo bloat)...")
	if err != nil {
		return err
	}

	p := newProgress(logger)
	g, err := cargo.ParseTree(treeOut)
	if err != nil {
		return err
	}
	sizes, err := cargo.ParseBloat(bloatOut)
	if err != nil {
		return err
	}
	cargo.FoldBinSize(sizes, cfg.Bin, g.Node(g.Root()).Short())
	g.SetSizes(sizes)
	g.NormalizeSizes()
	p.done(fmt.Sprintf("Parsed %d crates, %d dependency edges", g.NodeCount(), g.EdgeCount()))

	if err := applyOperations(g, cfg, threshold, logger); err != nil {
		return err
	}

	var values *metrics.Values
	if colored {
		switch scheme {
		case metrics.CumSum:
			values = metrics.CumulativeSizes(g)
		case metrics.DepCount:
			values = metrics.DependencyCounts(g)
		case metrics.RevDepCount:
			values = metrics.ReverseDependencyCounts(g)
		}
		if cfg.Gamma >= 0 {
			values.SetGamma(cfg.Gamma)
		}
	}

	dot := render.ToDOT(g, render.DotOptions{
		Highlight:        highlight,
		DarkMode:         cfg.DarkMode,
		Values:           values,
		Gradient:         gradient,
		InverseGradient:  cfg.InverseGradient,
		ScaleFactor:      cfg.ScaleFactor,
		SeparationFactor: cfg.SeparationFactor,
		Padding:          cfg.Padding,
	}, tmpl)

	path, err := writeOutput(ctx, g, dot, cfg, highlight)
	if err != nil {
		return err
	}

	printStats(g.NodeCount(), g.EdgeCount(), treeHit && bloatHit)
	printFile(path)

	if !cfg.NoOpen && !cfg.DotOnly {
		if err := browser.OpenFile(path); err != nil {
			logger.Warnf("open %s: %v", path, err)
		}
	}
	return nil
}

// applyOperations mutates the graph per the configured std node, re-root,
// excludes, depth, and threshold options, in that order. Threshold pruning
// uses cumulative sizes computed against the already-pruned graph.
func applyOperations(g *graph.Graph, cfg *Config, threshold uint64, logger *log.Logger) error {
	if cfg.Std {
		if _, err := g.AddStd(); err != nil {
			return err
		}
	}

	if cfg.Root != "" {
		index, err := resolveRoot(g, cfg.Root)
		if err != nil {
			return err
		}
		logger.Debugf("re-rooting at %s", g.Node(index).Full())
		if err := g.ChangeRoot(index); err != nil {
			return err
		}
	}

	if len(cfg.Excludes) > 0 {
		indices, err := resolveExcludes(g, cfg.Excludes)
		if err != nil {
			return err
		}
		logger.Debugf("excluding %d crates", len(indices))
		g.RemoveNodes(indices)
	}

	if cfg.Depth > 0 {
		g.RemoveBeyondDepth(cfg.Depth)
	}

	if threshold > 0 {
		sums := metrics.CumulativeSizes(g)
		var small []int
		for _, index := range g.Indices() {
			if index == g.Root() {
				continue
			}
			if sums.Value(index) < threshold {
				small = append(small, index)
			}
		}
		logger.Debugf("removing %d crates below threshold", len(small))
		g.RemoveNodes(small)
	}
	return nil
}

// cachedOutput returns the cached stdout of a cargo subcommand, or runs it
// behind a spinner and caches the result.
func cachedOutput(
	ctx context.Context,
	c cache.Cache,
	subcommand string,
	opts cargo.Options,
	lock []byte,
	run func(context.Context, cargo.Options) (string, error),
	message string,
) (string, bool, error) {
	key := cache.Key(subcommand, opts, lock)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return string(data), true, nil
	}

	spinner := newSpinner(ctx, message)
	spinner.Start()
	out, err := run(ctx, opts)
	spinner.Stop()
	if err != nil {
		return "", false, err
	}

	_ = c.Set(ctx, key, []byte(out), cache.DefaultTTL)
	return out, false, nil
}

// writeOutput writes the DOT, SVG, or PNG file and returns its path. The
// format follows --dot-only and the output extension.
func writeOutput(ctx context.Context, g *graph.Graph, dot string, cfg *Config, highlight render.Highlight) (string, error) {
	if cfg.DotOnly {
		path := cfg.Output
		if path == "" {
			path = "output.gv"
		}
		return path, writeFile(path, []byte(dot))
	}

	if strings.HasSuffix(cfg.Output, ".png") {
		png, err := render.RenderPNG(ctx, dot)
		if err != nil {
			return "", err
		}
		return cfg.Output, writeFile(cfg.Output, png)
	}

	path := cfg.Output
	if path == "" {
		path = "output.svg"
	}
	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return "", err
	}
	if highlight != render.HighlightOff {
		svg, err = render.InjectHighlight(svg, g.Indices(), cfg.HighlightAmount)
		if err != nil {
			return "", err
		}
	}
	return path, writeFile(path, svg)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
