// Package metrics computes per-node bloat metrics over a dependency graph.
//
// Every function takes a snapshot of the graph and recomputes its full
// node-indexed vector from scratch; nothing is incremental. Vectors are
// allocated at graph.Capacity so removed indices stay addressable, but only
// live indices carry meaningful values — callers must iterate the graph's
// index set, and indices obtained before a mutation must not be used after
// it.
package metrics

import (
	"math"

	"github.com/my4ng/pugio/pkg/graph"
)

// Scheme identifies which metric a Values vector holds.
type Scheme int

const (
	// CumSum is the cumulative apportioned size of a crate and its
	// transitive dependencies.
	CumSum Scheme = iota
	// DepCount is the number of transitive dependency relations from a
	// crate.
	DepCount
	// RevDepCount is the number of direct dependency relations onto a
	// crate from the crates that use it.
	RevDepCount
)

// String returns the human-readable metric name used in tooltips.
func (s Scheme) String() string {
	switch s {
	case CumSum:
		return "cumulative sum"
	case DepCount:
		return "dependency count"
	case RevDepCount:
		return "reverse dependency count"
	default:
		return "unknown"
	}
}

// Values is a node-indexed metric vector with the gamma used to compress
// it into the unit interval for coloring.
type Values struct {
	values []uint64
	gamma  float64
	max    uint64
	scheme Scheme
}

// Value returns the metric at the given node index.
func (v *Values) Value(index int) uint64 { return v.values[index] }

// Max returns the largest metric value across the graph.
func (v *Values) Max() uint64 { return v.max }

// Scheme returns which metric this vector holds.
func (v *Values) Scheme() Scheme { return v.scheme }

// Gamma returns the exponent applied by Normalized.
func (v *Values) Gamma() float64 { return v.gamma }

// SetGamma overrides the scheme default, clamped to [0, 1].
func (v *Values) SetGamma(gamma float64) {
	v.gamma = math.Min(math.Max(gamma, 0), 1)
}

// Normalized maps the metric at index into [0, 1] as (value/max)^gamma.
// The sub-unit exponent compresses the top of the range so heavily skewed
// distributions (a few crates dominating) stay distinguishable at the low
// end.
func (v *Values) Normalized(index int) float64 {
	if v.max == 0 {
		return 0
	}
	return math.Pow(float64(v.values[index])/float64(v.max), v.gamma)
}

// CumulativeSizes computes, for every crate, its own size plus the
// apportioned cumulative size of its direct dependencies. A dependency
// shared by several crates splits its cumulative size evenly across its
// distinct dependents instead of being counted once per dependent, so the
// totals stay conservative. Apportioning uses integer floor division; the
// at-most-(fan-out−1) bytes lost per shared node are deliberately accepted
// rather than switching the vector to floating point.
//
// Computed in reverse topological order so each dependency is final before
// any of its dependents. Gamma defaults to 0.25.
func CumulativeSizes(g *graph.Graph) *Values {
	values := make([]uint64, g.Capacity())
	for _, index := range g.Indices() {
		if size, ok := g.Size(index); ok {
			values[index] = size
		}
	}

	order := g.Topo()
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		parents := g.Neighbors(node, false)
		if len(parents) == 0 {
			continue
		}
		share := values[node] / uint64(len(parents))
		for _, parent := range parents {
			values[parent] += share
		}
	}

	return newValues(values, 0.25, CumSum)
}

// DependencyCounts computes the number of transitive dependency edges
// reachable from every crate: each direct dependency contributes its own
// count plus one. Reverse topological order. Gamma defaults to 0.25.
func DependencyCounts(g *graph.Graph) *Values {
	values := make([]uint64, g.Capacity())

	order := g.Topo()
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		for _, dep := range g.Neighbors(node, true) {
			values[node] += values[dep] + 1
		}
	}

	return newValues(values, 0.25, DepCount)
}

// ReverseDependencyCounts computes, for every crate, how many dependency
// relations point at it: one per incoming edge, accumulated in a forward
// topological sweep. Gamma defaults to 0.5.
func ReverseDependencyCounts(g *graph.Graph) *Values {
	values := make([]uint64, g.Capacity())

	for _, node := range g.Topo() {
		for _, dep := range g.Neighbors(node, true) {
			values[dep]++
		}
	}

	return newValues(values, 0.5, RevDepCount)
}

func newValues(values []uint64, gamma float64, scheme Scheme) *Values {
	var max uint64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return &Values{values: values, gamma: gamma, max: max, scheme: scheme}
}

// Classes partitions the graph into overlapping highlight groups: for each
// live node, the set of nodes in its transitive closure toward dependencies
// (down true) or toward dependents (down false), itself included. One
// topological sweep merges predecessor or successor sets along edges. The
// sets drive interactive hover highlighting only; nothing else depends on
// their order.
func Classes(g *graph.Graph, down bool) [][]int {
	classes := make([][]int, g.Capacity())
	order := g.Topo()

	if down {
		for _, node := range order {
			classes[node] = append(classes[node], node)
			for _, dep := range g.Neighbors(node, true) {
				classes[dep] = append(classes[dep], classes[node]...)
			}
		}
		return classes
	}

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		classes[node] = append(classes[node], node)
		for _, dep := range g.Neighbors(node, true) {
			classes[node] = append(classes[node], classes[dep]...)
		}
	}
	return classes
}
