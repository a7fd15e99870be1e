package cargo

import (
	"errors"
	"fmt"
)

// ErrEmptyTree is returned by ParseTree when the listing contains no
// lines. cargo prints at least the workspace root for any resolvable
// project, so an empty listing means the invocation itself was wrong.
var ErrEmptyTree = errors.New("cargo tree output is empty: no resolvable root package")

// Line-level parse failures. These are wrapped in a *ParseError carrying
// the offending line.
var (
	errBadDepthPrefix   = errors.New("malformed depth prefix")
	errDepthJump        = errors.New("depth increases by more than one level")
	errBadFeatureQuote  = errors.New("unterminated feature name quoting")
	errMissingVersion   = errors.New("missing space between crate name and version")
	errUnmatchedBackRef = errors.New("feature back-reference to an unexpanded crate")
	errMultiplePackages = errors.New("one and only one package must be specified")
)

// ParseError reports an unrecoverable defect in the cargo tree listing.
// Parsing stops at the first defect; the offending line is preserved
// verbatim for diagnostics.
type ParseError struct {
	LineNo int
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cargo tree line %d: %s: %q", e.LineNo, e.Reason, e.Line)
}
