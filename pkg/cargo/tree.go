package cargo

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/my4ng/pugio/pkg/graph"
)

// ParseTree builds the dependency graph from the output of
//
//	cargo tree --edges=no-build,no-proc-macro,no-dev,features --prefix=depth --color=never
//
// Each line carries its nesting depth as a decimal prefix, followed by
// either a crate ("serde v1.0.0", optionally "(*)" when the subtree was
// already printed) or a feature header ("serde feature \"derive\"").
//
// The reconstruction is a stack machine, not recursive descent: the stack
// holds one (node, active feature) frame per open ancestor level, a depth
// increase of one pushes the previous node, and a smaller depth truncates
// back to that level. A feature header directly preceding its own crate at
// the same depth is the one case where the depth does not change; that
// look-behind is carried in a feature-first flag cleared on the next line.
//
// A "(*)" on a feature line is cargo's deduplication shortcut: it refers
// back to the node that first expanded the same (crate, feature) pair, so
// it adds an edge instead of a duplicate subtree. The back-reference table
// is scratch state local to one parse.
//
// The first crate line allocates the root. Malformed lines and unmatched
// back-references abort with a *ParseError naming the offending line;
// empty input returns ErrEmptyTree because a listing without a resolvable
// root is a usage error upstream, not an empty graph. A blank line inside
// the listing is cargo's separator between per-package trees, so it aborts
// too: exactly one package must be selected.
func ParseTree(text string) (*graph.Graph, error) {
	p := treeParser{
		graph:   graph.New(),
		nodes:   make(map[string]int),
		backRef: make(map[backRefKey]int),
	}

	lineNo := 0
	parsed := false
	for line := range strings.Lines(text) {
		lineNo++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if parsed {
				return nil, &ParseError{LineNo: lineNo, Line: line, Reason: errMultiplePackages.Error()}
			}
			continue
		}
		if err := p.line(line); err != nil {
			return nil, &ParseError{LineNo: lineNo, Line: line, Reason: err.Error()}
		}
		parsed = true
	}
	if !parsed {
		return nil, ErrEmptyTree
	}
	return p.graph, nil
}

// backRefKey identifies the first full expansion of a feature of a crate.
// The short name is kept exactly as printed (hyphens intact) since it only
// ever matches against other tree lines.
type backRefKey struct {
	short   string
	feature string
}

// frame is one open ancestor level: the crate node plus the feature of
// that crate currently being expanded, if any.
type frame struct {
	node    int
	feature string
	hasFeat bool
}

type treeParser struct {
	graph   *graph.Graph
	nodes   map[string]int     // "short version" text -> node index
	backRef map[backRefKey]int // (short, feature) -> node index

	stack     []frame
	last      frame
	featFirst bool
}

func (p *treeParser) line(line string) error {
	// The depth prefix runs up to the first letter of the crate name.
	split := strings.IndexFunc(line, unicode.IsLetter)
	if split <= 0 {
		return errBadDepthPrefix
	}
	depth, err := strconv.Atoi(line[:split])
	if err != nil {
		return errBadDepthPrefix
	}
	rest := line[split:]
	lib := strings.TrimSuffix(rest, " (*)")

	switch {
	case depth < len(p.stack):
		p.stack = p.stack[:depth]
	case depth == len(p.stack)+1:
		if !p.featFirst {
			p.stack = append(p.stack, p.last)
		}
	case depth > len(p.stack)+1:
		return errDepthJump
	}

	if featIndex := strings.Index(lib, ` feature "`); featIndex >= 0 {
		return p.featureLine(rest, lib, featIndex)
	}
	return p.crateLine(lib)
}

// featureLine handles `<short> feature "<feat>"` headers. Without "(*)"
// the next line re-lists the crate itself, so the only action is to arm
// the feature-first state; with "(*)" the expansion is a back-reference
// and resolves to an edge immediately.
func (p *treeParser) featureLine(rest, lib string, featIndex int) error {
	quoted := lib[featIndex+len(` feature `):]
	if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
		return errBadFeatureQuote
	}
	feat := quoted[1 : len(quoted)-1]
	p.last.feature = feat
	p.last.hasFeat = true

	if !strings.HasSuffix(rest, "(*)") {
		p.featFirst = true
		return nil
	}

	short := lib[:featIndex]
	node, ok := p.backRef[backRefKey{short, feat}]
	if !ok {
		return errUnmatchedBackRef
	}
	p.attach(node)
	return nil
}

func (p *treeParser) crateLine(lib string) error {
	node, ok := p.nodes[lib]
	if !ok {
		sep := strings.IndexByte(lib, ' ')
		if sep < 0 {
			return errMissingVersion
		}
		name := strings.ReplaceAll(lib[:sep], "-", "_") + lib[sep:]
		node = p.graph.AddNode(name, sep)
		p.nodes[lib] = node
	}

	if p.featFirst {
		short := lib[:strings.IndexByte(lib, ' ')]
		p.backRef[backRefKey{short, p.last.feature}] = node
		_ = p.graph.SetNodeFeature(node, p.last.feature)

		// A feature "i"
		// |- A
		// |- A feature "j"
		//    |- A
		// re-listing the same crate under an open feature frame means
		// feature "i" enables sub-feature "j" on the crate itself.
		if len(p.stack) > 0 {
			top := p.stack[len(p.stack)-1]
			if top.node == node && top.hasFeat {
				_ = p.graph.AddSubFeature(node, top.feature, p.last.feature)
			}
		}
	} else {
		p.last.feature = ""
		p.last.hasFeat = false
	}

	p.attach(node)

	p.last.node = node
	if p.featFirst {
		p.stack = append(p.stack, p.last)
		p.last.feature = ""
		p.last.hasFeat = false
	}
	p.featFirst = false
	return nil
}

// attach links node under the crate on top of the stack, unless the top is
// the node itself (a feature header re-listing its own crate). When both
// the parent frame and the current line carry a feature, the pair lands in
// the edge's feature map: parent feature -> enabled child feature.
func (p *treeParser) attach(node int) {
	if len(p.stack) == 0 {
		return
	}
	top := p.stack[len(p.stack)-1]
	if top.node == node {
		return
	}
	_ = p.graph.AddEdge(top.node, node)
	if top.hasFeat && p.last.hasFeat {
		_ = p.graph.AddEdgeFeature(top.node, node, top.feature, p.last.feature)
	}
}
