package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/my4ng/pugio/pkg/metrics"
	"github.com/my4ng/pugio/pkg/render"
)

// configFile is the config file looked up in the working directory when
// --config is not given.
const configFile = "pugio.toml"

// Config collects every pipeline option. Flag values land here directly;
// values from the config file are merged in afterwards for flags the user
// did not set.
type Config struct {
	// Cargo invocation.
	Package           string
	Bin               string
	Features          string
	AllFeatures       bool
	NoDefaultFeatures bool
	Release           bool

	// Graph operations.
	Excludes []string
	Root     string
	Std      bool
	Depth    int    // 0 disables depth pruning
	Threshold string // humanized byte count, or "non-zero"

	// Coloring.
	Scheme          string
	Gradient        string
	Gamma           float64 // negative means scheme default
	InverseGradient bool

	// Output.
	DarkMode         bool
	Padding          float64
	ScaleFactor      float64
	SeparationFactor float64
	Highlight        string // "dep", "rev-dep", or empty
	HighlightAmount  float64

	NodeLabelTemplate   string
	NodeTooltipTemplate string
	EdgeLabelTemplate   string
	EdgeTooltipTemplate string

	DotOnly bool
	Output  string
	NoOpen  bool
	Refresh bool
}

// fileConfig mirrors Config with optional fields so the merge can tell an
// absent key from a zero value.
type fileConfig struct {
	Package           *string  `toml:"package"`
	Bin               *string  `toml:"bin"`
	Features          *string  `toml:"features"`
	AllFeatures       *bool    `toml:"all-features"`
	NoDefaultFeatures *bool    `toml:"no-default-features"`
	Release           *bool    `toml:"release"`
	Excludes          []string `toml:"excludes"`
	Root              *string  `toml:"root"`
	Std               *bool    `toml:"std"`
	Depth             *int     `toml:"depth"`
	Threshold         *string  `toml:"threshold"`
	Scheme            *string  `toml:"scheme"`
	Gradient          *string  `toml:"gradient"`
	Gamma             *float64 `toml:"gamma"`
	InverseGradient   *bool    `toml:"inverse-gradient"`
	DarkMode          *bool    `toml:"dark-mode"`
	Padding           *float64 `toml:"padding"`
	ScaleFactor       *float64 `toml:"scale-factor"`
	SeparationFactor  *float64 `toml:"separation-factor"`
	Highlight         *string  `toml:"highlight"`
	HighlightAmount   *float64 `toml:"highlight-amount"`

	NodeLabelTemplate   *string `toml:"node-label-template"`
	NodeTooltipTemplate *string `toml:"node-tooltip-template"`
	EdgeLabelTemplate   *string `toml:"edge-label-template"`
	EdgeTooltipTemplate *string `toml:"edge-tooltip-template"`

	DotOnly *bool   `toml:"dot-only"`
	Output  *string `toml:"output"`
	NoOpen  *bool   `toml:"no-open"`
}

// loadConfig reads the TOML config at path, or pugio.toml in the working
// directory when path is empty. A missing default file is not an error; a
// missing explicit --config file is.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = configFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// merge copies config-file values into cfg for every flag the user left
// untouched on the command line.
func merge(cfg *Config, file *fileConfig, cmd *cobra.Command) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }

	mergeString(&cfg.Package, file.Package, set("package"))
	mergeString(&cfg.Bin, file.Bin, set("bin"))
	mergeString(&cfg.Features, file.Features, set("features"))
	mergeBool(&cfg.AllFeatures, file.AllFeatures, set("all-features"))
	mergeBool(&cfg.NoDefaultFeatures, file.NoDefaultFeatures, set("no-default-features"))
	mergeBool(&cfg.Release, file.Release, set("release"))
	if file.Excludes != nil && !set("excludes") {
		cfg.Excludes = file.Excludes
	}
	mergeString(&cfg.Root, file.Root, set("root"))
	mergeBool(&cfg.Std, file.Std, set("std"))
	mergeInt(&cfg.Depth, file.Depth, set("depth"))
	mergeString(&cfg.Threshold, file.Threshold, set("threshold"))
	mergeString(&cfg.Scheme, file.Scheme, set("scheme"))
	mergeString(&cfg.Gradient, file.Gradient, set("gradient"))
	mergeFloat(&cfg.Gamma, file.Gamma, set("gamma"))
	mergeBool(&cfg.InverseGradient, file.InverseGradient, set("inverse-gradient"))
	mergeBool(&cfg.DarkMode, file.DarkMode, set("dark-mode"))
	mergeFloat(&cfg.Padding, file.Padding, set("padding"))
	mergeFloat(&cfg.ScaleFactor, file.ScaleFactor, set("scale-factor"))
	mergeFloat(&cfg.SeparationFactor, file.SeparationFactor, set("separation-factor"))
	mergeString(&cfg.Highlight, file.Highlight, set("highlight"))
	mergeFloat(&cfg.HighlightAmount, file.HighlightAmount, set("highlight-amount"))
	mergeString(&cfg.NodeLabelTemplate, file.NodeLabelTemplate, set("node-label-template"))
	mergeString(&cfg.NodeTooltipTemplate, file.NodeTooltipTemplate, set("node-tooltip-template"))
	mergeString(&cfg.EdgeLabelTemplate, file.EdgeLabelTemplate, set("edge-label-template"))
	mergeString(&cfg.EdgeTooltipTemplate, file.EdgeTooltipTemplate, set("edge-tooltip-template"))
	mergeBool(&cfg.DotOnly, file.DotOnly, set("dot-only"))
	mergeString(&cfg.Output, file.Output, set("output"))
	mergeBool(&cfg.NoOpen, file.NoOpen, set("no-open"))
}

func mergeString(dst *string, src *string, flagSet bool) {
	if src != nil && !flagSet {
		*dst = *src
	}
}

func mergeBool(dst *bool, src *bool, flagSet bool) {
	if src != nil && !flagSet {
		*dst = *src
	}
}

func mergeInt(dst *int, src *int, flagSet bool) {
	if src != nil && !flagSet {
		*dst = *src
	}
}

func mergeFloat(dst *float64, src *float64, flagSet bool) {
	if src != nil && !flagSet {
		*dst = *src
	}
}

// parseScheme resolves the scheme name to the metric it selects. The
// second return is false for "none".
func parseScheme(s string) (metrics.Scheme, bool, error) {
	switch s {
	case "", "cum-sum":
		return metrics.CumSum, true, nil
	case "dep-count":
		return metrics.DepCount, true, nil
	case "rev-dep-count":
		return metrics.RevDepCount, true, nil
	case "none":
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("unknown scheme %q", s)
	}
}

// parseHighlight maps "dep"/"rev-dep" to the render highlight mode.
func parseHighlight(h string) (render.Highlight, error) {
	switch h {
	case "":
		return render.HighlightOff, nil
	case "dep":
		return render.HighlightDown, nil
	case "rev-dep":
		return render.HighlightUp, nil
	default:
		return render.HighlightOff, fmt.Errorf("unknown highlight %q (want dep or rev-dep)", h)
	}
}

// parseThreshold parses a humanized byte count such as "21KiB" or "69 KB";
// "non-zero" removes only zero-sized subtrees. Returns 0 for an empty
// string, meaning no threshold pruning.
func parseThreshold(t string) (uint64, error) {
	switch t {
	case "":
		return 0, nil
	case "non-zero":
		return 1, nil
	}
	bytes, err := humanize.ParseBytes(t)
	if err != nil {
		return 0, fmt.Errorf("parse threshold %q: %w", t, err)
	}
	return bytes, nil
}
