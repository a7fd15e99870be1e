package graph

// SetSizes installs the crate size table, a map from short name to the
// aggregate compiled size in bytes. Short names are shared across versions
// of the same crate; call NormalizeSizes once after the graph is built to
// split each aggregate across the versions present.
func (g *Graph) SetSizes(sizes map[string]uint64) {
	g.sizes = sizes
	g.normalized = false
}

// NormalizeSizes divides every size-table entry by the number of live
// nodes sharing that short name, so crates present in several versions do
// not count their aggregate size once per version. Division is floor
// division; the lost remainder bytes are accepted as part of the
// size-sharing approximation. Calling it again is a no-op.
func (g *Graph) NormalizeSizes() {
	if g.normalized {
		return
	}
	g.normalized = true

	counts := make(map[string]uint64, len(g.nodes))
	for _, n := range g.nodes {
		if n != nil {
			counts[n.Short()]++
		}
	}
	for name, size := range g.sizes {
		if count := counts[name]; count > 1 {
			g.sizes[name] = size / count
		}
	}
}

// Size returns the size in bytes attributed to the node at the given
// index, looked up by short name. The second result is false when the
// crate does not appear in the size table; callers treat that as zero.
func (g *Graph) Size(index int) (uint64, bool) {
	n := g.Node(index)
	if n == nil {
		return 0, false
	}
	size, ok := g.sizes[n.Short()]
	return size, ok
}
