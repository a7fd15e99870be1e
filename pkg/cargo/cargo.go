// Package cargo invokes the external cargo tooling and parses its output
// into the pugio dependency graph.
//
// Two subprocesses feed the pipeline: `cargo tree` produces the
// depth-prefixed dependency listing consumed by ParseTree, and
// `cargo bloat` produces the per-crate size report consumed by ParseBloat.
// Both calls are synchronous and honor context cancellation; the package
// performs no other I/O.
package cargo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Options selects the package, target, and feature set that both cargo
// subcommands operate on.
type Options struct {
	Package           string // -p/--package
	Bin               string // --bin, cargo bloat only
	Features          string // space or comma separated feature list
	AllFeatures       bool
	NoDefaultFeatures bool
	Release           bool // cargo bloat only; cargo tree is build-free
}

// Tree runs `cargo tree` with the feature edges included and a decimal
// depth prefix on every line, returning its stdout.
func Tree(ctx context.Context, opts Options) (string, error) {
	args := []string{
		"tree",
		"--edges=no-build,no-proc-macro,no-dev,features",
		"--prefix=depth",
		"--color=never",
	}
	args = appendCommonArgs(args, opts)
	return run(ctx, args)
}

// Bloat runs `cargo bloat` in per-crate JSON mode, returning its stdout.
// Requires cargo-bloat to be installed (cargo install cargo-bloat).
func Bloat(ctx context.Context, opts Options) (string, error) {
	args := []string{"bloat", "-n0", "--message-format=json", "--crates"}
	args = appendCommonArgs(args, opts)
	if opts.Bin != "" {
		args = append(args, "--bin="+opts.Bin)
	}
	if opts.Release {
		args = append(args, "--release")
	}
	return run(ctx, args)
}

func appendCommonArgs(args []string, opts Options) []string {
	if opts.Package != "" {
		args = append(args, "--package="+opts.Package)
	}
	if opts.Features != "" {
		args = append(args, "--features="+opts.Features)
	}
	if opts.AllFeatures {
		args = append(args, "--all-features")
	}
	if opts.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	return args
}

func run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "cargo", args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cargo %s: %w: %s", args[0], err, bytes.TrimSpace(errBuf.Bytes()))
	}
	return out.String(), nil
}
