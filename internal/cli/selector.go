package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/my4ng/pugio/pkg/graph"
)

// AmbiguousSelectorError reports a root selector that matched zero or more
// than one crate. The full names of every match are preserved so the user
// can tighten the pattern; selection is never auto-resolved.
type AmbiguousSelectorError struct {
	Pattern string
	Matches []string
}

func (e *AmbiguousSelectorError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("root selector %q matches no crate", e.Pattern)
	}
	return fmt.Sprintf("root selector %q matches %d crates:\n  %s",
		e.Pattern, len(e.Matches), strings.Join(e.Matches, "\n  "))
}

// resolveRoot finds the single crate whose full name matches the pattern.
func resolveRoot(g *graph.Graph, pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("root selector: %w", err)
	}

	var (
		found   int
		matches []string
	)
	for _, index := range g.Indices() {
		if re.MatchString(g.Node(index).Full()) {
			found = index
			matches = append(matches, g.Node(index).Full())
		}
	}
	if len(matches) != 1 {
		return 0, &AmbiguousSelectorError{Pattern: pattern, Matches: matches}
	}
	return found, nil
}

// resolveExcludes collects every crate whose full name matches any of the
// patterns. Unlike the root selector, matching several crates (or none) is
// expected here.
func resolveExcludes(g *graph.Graph, patterns []string) ([]int, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude selector %q: %w", pattern, err)
		}
		res = append(res, re)
	}

	var indices []int
	for _, index := range g.Indices() {
		full := g.Node(index).Full()
		for _, re := range res {
			if re.MatchString(full) {
				indices = append(indices, index)
				break
			}
		}
	}
	return indices, nil
}
