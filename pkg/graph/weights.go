package graph

import (
	"slices"
	"strings"
)

// Node is the weight of a crate node. The short name has already had
// hyphens rewritten to underscores, matching the crate naming used in
// compiled artifacts.
type Node struct {
	name     string
	shortEnd int
	features map[string][]string
}

// Short returns the crate short name, e.g. "pugio_lib" for the full name
// "pugio_lib v1.0.0".
func (n *Node) Short() string { return n.name[:n.shortEnd] }

// Extra returns the version and optional path suffix, e.g. "v1.0.0".
func (n *Node) Extra() string { return n.name[n.shortEnd+1:] }

// Full returns the full crate name, e.g. "pugio_lib v1.0.0".
func (n *Node) Full() string { return n.name }

// Features returns the enabled features of the crate as a map from a
// feature to the sub-features of the same crate that it directly enables.
// Features enabled on dependencies live on the corresponding Edge instead.
// The map is shared with the graph and must not be modified.
func (n *Node) Features() map[string][]string { return n.features }

// FeatureNames returns the enabled feature names in sorted order, for
// deterministic downstream rendering.
func (n *Node) FeatureNames() []string { return sortedKeys(n.features) }

// Edge is the weight of a dependency edge from a dependent crate to one of
// its dependencies.
type Edge struct {
	features map[string][]string
}

// Features returns the map from a feature of the source crate to the
// features of the target crate that it enables. The map is shared with the
// graph and must not be modified.
func (e *Edge) Features() map[string][]string { return e.features }

// FeatureNames returns the source feature names in sorted order.
func (e *Edge) FeatureNames() []string { return sortedKeys(e.features) }

// SetNodeFeature records that the crate at index has the named feature
// enabled, with no sub-features yet.
func (g *Graph) SetNodeFeature(index int, feature string) error {
	n := g.Node(index)
	if n == nil {
		return ErrUnknownNode
	}
	if _, ok := n.features[feature]; !ok {
		n.features[feature] = nil
	}
	return nil
}

// AddSubFeature appends sub to the list of same-crate features that the
// named feature of the crate at index enables.
func (g *Graph) AddSubFeature(index int, feature, sub string) error {
	n := g.Node(index)
	if n == nil {
		return ErrUnknownNode
	}
	n.features[feature] = append(n.features[feature], sub)
	return nil
}

// AddEdgeFeature records on the from→to edge that the source feature
// enables the target feature. The edge must already exist.
func (g *Graph) AddEdgeFeature(from, to int, feature, enables string) error {
	e := g.Edge(from, to)
	if e == nil {
		return ErrUnknownNode
	}
	e.features[feature] = append(e.features[feature], enables)
	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// FormatFeatures renders a feature map as "feat(sub,subs)" entries joined
// by ",\n" in sorted feature order, the form used in labels and tooltips.
func FormatFeatures(features map[string][]string) string {
	parts := make([]string, 0, len(features))
	for _, name := range sortedKeys(features) {
		subs := features[name]
		if len(subs) == 0 {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+"("+strings.Join(subs, ",")+")")
	}
	return strings.Join(parts, ",\n")
}
