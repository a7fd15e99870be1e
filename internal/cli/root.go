package cli

import (
	"context"
	"errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/my4ng/pugio/pkg/buildinfo"
)

// Execute runs the pugio CLI and returns an error if the pipeline or a
// subcommand fails. The root command itself runs the full pipeline; the
// logger is attached to the context and accessible via loggerFromContext.
// Cancelling ctx aborts any running cargo subprocess.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := &Config{
		Scheme:          "cum-sum",
		Gradient:        "reds",
		Gamma:           -1, // scheme default
		HighlightAmount: 0.5,
	}

	root := &cobra.Command{
		Use:          "pugio [flags]",
		Short:        "Pugio visualizes the compiled-size bloat of Rust dependency trees",
		Long: `Pugio runs cargo tree and cargo bloat over a Rust package, folds the
results into a dependency graph annotated with compiled sizes and feature
flags, and renders it as an interactive SVG where node area and color show
where the bytes come from.

Run it from a cargo workspace. cargo bloat must be installed
(cargo install cargo-bloat).`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			merge(cfg, file, cmd)
			return runPipeline(cmd.Context(), cfg)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVar(&configPath, "config", "", "config file (default pugio.toml if present)")

	flags := root.Flags()

	// Cargo invocation.
	flags.StringVarP(&cfg.Package, "package", "p", "", "package to inspect")
	flags.StringVar(&cfg.Bin, "bin", "", "binary to inspect")
	flags.StringVarP(&cfg.Features, "features", "F", "", "space or comma separated list of features to activate")
	flags.BoolVar(&cfg.AllFeatures, "all-features", false, "activate all available features")
	flags.BoolVar(&cfg.NoDefaultFeatures, "no-default-features", false, "do not activate the default feature")
	flags.BoolVar(&cfg.Release, "release", false, "build artifacts in release mode, with optimizations")

	// Graph operations.
	flags.StringArrayVarP(&cfg.Excludes, "excludes", "E", nil, "remove crates whose names match the regex patterns")
	flags.StringVarP(&cfg.Root, "root", "R", "", "change root to the unique crate name matching the regex pattern")
	flags.BoolVar(&cfg.Std, "std", false, "add a standalone std node")
	flags.IntVarP(&cfg.Depth, "depth", "d", 0, "remove crates that are more than max depth deep")
	flags.StringVarP(&cfg.Threshold, "threshold", "t", "", `remove crates with cumulative size below threshold ("21KiB", "69 KB", or "non-zero")`)

	// Coloring.
	flags.StringVarP(&cfg.Scheme, "scheme", "s", cfg.Scheme, "color scheme: cum-sum, dep-count, rev-dep-count, none")
	flags.StringVarP(&cfg.Gradient, "gradient", "g", cfg.Gradient, "color gradient: reds, oranges, purples, greens, blues, bu-pu, or-rd, pu-rd, rd-pu, viridis, cividis, plasma")
	flags.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "color gamma between 0.0 and 1.0 (default is scheme-specific)")
	flags.BoolVar(&cfg.InverseGradient, "inverse-gradient", false, "inverse color gradient")

	// Output.
	flags.BoolVar(&cfg.DarkMode, "dark-mode", false, "dark mode for the output file")
	flags.Float64Var(&cfg.Padding, "padding", 0, "padding for the output file (default 1.0)")
	flags.Float64Var(&cfg.ScaleFactor, "scale-factor", 0, "scale factor for the output file")
	flags.Float64Var(&cfg.SeparationFactor, "separation-factor", 0, "separation factor for the output file")
	flags.StringVar(&cfg.Highlight, "highlight", "", "highlight on hover: dep (dependencies) or rev-dep (dependents); needs a browser with CSS :has() support")
	flags.Float64Var(&cfg.HighlightAmount, "highlight-amount", cfg.HighlightAmount, "highlight amount between 0.0 and 1.0")
	flags.StringVar(&cfg.NodeLabelTemplate, "node-label-template", "", `node label template (default "{{.Short}}")`)
	flags.StringVar(&cfg.NodeTooltipTemplate, "node-tooltip-template", "", `node tooltip template (default "{{.Full}}\n{{.SizeBinary}}\n{{.Features}}")`)
	flags.StringVar(&cfg.EdgeLabelTemplate, "edge-label-template", "", `edge label template (default "{{.Features}}")`)
	flags.StringVar(&cfg.EdgeTooltipTemplate, "edge-tooltip-template", "", `edge tooltip template (default "{{.Source}} -> {{.Target}}")`)
	flags.BoolVar(&cfg.DotOnly, "dot-only", false, "write the DOT file only, skip rendering")
	flags.StringVarP(&cfg.Output, "output", "o", "", "output filename (default output.svg, or output.gv with --dot-only; .png renders a PNG)")
	flags.BoolVar(&cfg.NoOpen, "no-open", false, "do not open the output file")
	flags.BoolVar(&cfg.Refresh, "refresh", false, "ignore cached cargo output")

	root.AddCommand(newCacheCmd())

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		printError("%v", err)
	}
	return err
}
