package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/my4ng/pugio/pkg/metrics"
	"github.com/my4ng/pugio/pkg/render"
)

func TestLoadConfigMissingDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	file, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig without pugio.toml: %v", err)
	}
	if file.Package != nil || file.Depth != nil {
		t.Error("missing default config should load as empty")
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("an explicitly named missing config file should fail")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pugio.toml")
	content := `
package = "my-app"
depth = 3
dark-mode = true
gamma = 0.5
excludes = ["^winapi", "^windows-sys"]
threshold = "non-zero"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if file.Package == nil || *file.Package != "my-app" {
		t.Errorf("Package = %v, want my-app", file.Package)
	}
	if file.Depth == nil || *file.Depth != 3 {
		t.Errorf("Depth = %v, want 3", file.Depth)
	}
	if file.DarkMode == nil || !*file.DarkMode {
		t.Errorf("DarkMode = %v, want true", file.DarkMode)
	}
	if file.Gamma == nil || *file.Gamma != 0.5 {
		t.Errorf("Gamma = %v, want 0.5", file.Gamma)
	}
	if len(file.Excludes) != 2 {
		t.Errorf("Excludes = %v, want two patterns", file.Excludes)
	}
	if file.Threshold == nil || *file.Threshold != "non-zero" {
		t.Errorf("Threshold = %v, want non-zero", file.Threshold)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pugio.toml")
	if err := os.WriteFile(path, []byte("depth = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed TOML should fail to load")
	}
}

func TestMergePrecedence(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("package", "", "")
	cmd.Flags().Int("depth", 0, "")
	cmd.Flags().Bool("dark-mode", false, "")
	cmd.Flags().StringSlice("excludes", nil, "")
	if err := cmd.Flags().Set("depth", "7"); err != nil {
		t.Fatal(err)
	}

	cfg := Config{Depth: 7}
	pkg, depth, dark := "my-app", 3, true
	file := &fileConfig{
		Package:  &pkg,
		Depth:    &depth,
		DarkMode: &dark,
		Excludes: []string{"^winapi"},
	}
	merge(&cfg, file, cmd)

	// Flags the user set win; everything else comes from the file.
	if cfg.Depth != 7 {
		t.Errorf("Depth = %d, want the flag value 7", cfg.Depth)
	}
	if cfg.Package != "my-app" {
		t.Errorf("Package = %q, want the file value", cfg.Package)
	}
	if !cfg.DarkMode {
		t.Error("DarkMode should come from the file")
	}
	if len(cfg.Excludes) != 1 || cfg.Excludes[0] != "^winapi" {
		t.Errorf("Excludes = %v, want the file patterns", cfg.Excludes)
	}
}

func TestMergeKeepsDefaultsWhenFileEmpty(t *testing.T) {
	cmd := &cobra.Command{}
	cfg := Config{Scheme: "cum-sum", Gradient: "reds"}
	merge(&cfg, &fileConfig{}, cmd)

	if cfg.Scheme != "cum-sum" || cfg.Gradient != "reds" {
		t.Errorf("empty file should leave defaults alone, got %+v", cfg)
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		input   string
		scheme  metrics.Scheme
		colored bool
		wantErr bool
	}{
		{"", metrics.CumSum, true, false},
		{"cum-sum", metrics.CumSum, true, false},
		{"dep-count", metrics.DepCount, true, false},
		{"rev-dep-count", metrics.RevDepCount, true, false},
		{"none", 0, false, false},
		{"size", 0, false, true},
	}
	for _, tt := range tests {
		scheme, colored, err := parseScheme(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseScheme(%q) error = %v", tt.input, err)
			continue
		}
		if err == nil && (scheme != tt.scheme || colored != tt.colored) {
			t.Errorf("parseScheme(%q) = (%v, %v), want (%v, %v)",
				tt.input, scheme, colored, tt.scheme, tt.colored)
		}
	}
}

func TestParseHighlight(t *testing.T) {
	tests := []struct {
		input   string
		want    render.Highlight
		wantErr bool
	}{
		{"", render.HighlightOff, false},
		{"dep", render.HighlightDown, false},
		{"rev-dep", render.HighlightUp, false},
		{"both", render.HighlightOff, true},
	}
	for _, tt := range tests {
		got, err := parseHighlight(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHighlight(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHighlight(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"", 0, false},
		{"non-zero", 1, false},
		{"21KiB", 21504, false},
		{"69 KB", 69000, false},
		{"1.5 MiB", 1572864, false},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		got, err := parseThreshold(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseThreshold(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseThreshold(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
