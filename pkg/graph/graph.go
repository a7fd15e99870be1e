// Package graph provides the dependency DAG at the heart of pugio.
//
// A Graph is built once from cargo output, optionally reduced through a
// small set of mutations, and then read by the metrics and render layers.
// Each node represents a crate (one node per distinct name+version text),
// and each directed edge represents the dependency of the source crate on
// the target crate.
//
// # Indices
//
// Nodes are identified by the integer index assigned at insertion. Indices
// are stable across removals but become sparse: after RemoveNodes the arena
// keeps tombstones so the surviving indices never shift. Iterate with
// Indices (or a traversal) rather than assuming a dense 0..NodeCount range.
//
// # Mutation
//
// The graph only shrinks after construction. ChangeRoot, RemoveNodes, and
// RemoveBeyondDepth each finish by pruning every node that is no longer
// reachable from the root, so the reachability invariant holds after every
// public mutation. The synthetic std node (see AddStd) is exempt from
// pruning.
//
// Graph is not safe for concurrent use.
package graph

import "errors"

var (
	// ErrUnknownNode is returned when an operation references a node index
	// that is out of range or has been removed.
	ErrUnknownNode = errors.New("unknown node index")

	// ErrSelfLoop is returned by AddEdge when source and target are the
	// same node. A dependency tree cannot contain reflexive edges.
	ErrSelfLoop = errors.New("self-loop edge")

	// ErrStdExists is returned by AddStd when the graph already has a
	// std node.
	ErrStdExists = errors.New("std node already added")
)

// Graph is a directed acyclic dependency graph with per-node and per-edge
// feature metadata and a short-name size table.
type Graph struct {
	nodes []*Node // arena; nil slots are tombstones
	out   [][]int // outgoing adjacency, insertion order
	in    [][]int // incoming adjacency, insertion order
	edges map[edgeKey]*Edge

	sizes      map[string]uint64 // short-name -> bytes, shared across versions
	normalized bool

	root int
	std  int // -1 when absent
}

type edgeKey struct{ from, to int }

// New creates an empty graph. The first node added becomes the root.
func New() *Graph {
	return &Graph{
		edges: make(map[edgeKey]*Edge),
		sizes: make(map[string]uint64),
		std:   -1,
	}
}

// AddNode appends a crate node and returns its index. The name must carry
// the underscore-normalized short name in its first shortEnd bytes,
// followed by a space and the version or path suffix.
func (g *Graph) AddNode(name string, shortEnd int) int {
	n := &Node{name: name, shortEnd: shortEnd, features: make(map[string][]string)}
	g.nodes = append(g.nodes, n)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return len(g.nodes) - 1
}

// AddStd inserts the synthetic "std" standalone node and returns its index.
// The std node is exempt from every removal and reachability check.
func (g *Graph) AddStd() (int, error) {
	if g.std >= 0 {
		return 0, ErrStdExists
	}
	g.std = g.AddNode("std ", 3)
	return g.std, nil
}

// AddEdge records that from depends on to, creating the edge if it does
// not exist yet. Repeated mentions of the same ordered pair reuse the
// existing edge so feature maps accumulate on it.
func (g *Graph) AddEdge(from, to int) error {
	if !g.Contains(from) || !g.Contains(to) {
		return ErrUnknownNode
	}
	if from == to {
		return ErrSelfLoop
	}
	key := edgeKey{from, to}
	if _, ok := g.edges[key]; !ok {
		g.edges[key] = &Edge{features: make(map[string][]string)}
		g.out[from] = append(g.out[from], to)
		g.in[to] = append(g.in[to], from)
	}
	return nil
}

// Contains reports whether index refers to a live node.
func (g *Graph) Contains(index int) bool {
	return index >= 0 && index < len(g.nodes) && g.nodes[index] != nil
}

// Node returns the node at the given index, or nil if it was removed or
// never existed.
func (g *Graph) Node(index int) *Node {
	if !g.Contains(index) {
		return nil
	}
	return g.nodes[index]
}

// Edge returns the edge weight for the ordered pair, or nil if no such
// edge exists.
func (g *Graph) Edge(from, to int) *Edge {
	return g.edges[edgeKey{from, to}]
}

// Root returns the index of the current root node.
func (g *Graph) Root() int { return g.root }

// Std returns the index of the std node and whether one exists.
func (g *Graph) Std() (int, bool) { return g.std, g.std >= 0 }

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	count := 0
	for _, n := range g.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Capacity returns the exclusive upper bound of node indices. Metric
// vectors are allocated at this length so removed indices stay addressable.
func (g *Graph) Capacity() int { return len(g.nodes) }

// Indices returns the live node indices in ascending order.
func (g *Graph) Indices() []int {
	indices := make([]int, 0, len(g.nodes))
	for i, n := range g.nodes {
		if n != nil {
			indices = append(indices, i)
		}
	}
	return indices
}

// Neighbors returns the adjacent node indices of index: the dependencies
// when outgoing is true, the dependents otherwise. The slice is shared
// with the graph and must not be modified.
func (g *Graph) Neighbors(index int, outgoing bool) []int {
	if !g.Contains(index) {
		return nil
	}
	if outgoing {
		return g.out[index]
	}
	return g.in[index]
}

// ChangeRoot makes index the new root and removes every node no longer
// reachable from it. Returns ErrUnknownNode if the index is not live.
func (g *Graph) ChangeRoot(index int) error {
	if !g.Contains(index) {
		return ErrUnknownNode
	}
	g.root = index
	g.pruneUnreachable()
	return nil
}

// RemoveNodes deletes the nodes at the given indices together with their
// incident edges, then removes everything the deletions disconnected from
// the root. Unknown or already-removed indices are ignored; the std node
// cannot be removed.
func (g *Graph) RemoveNodes(indices []int) {
	for _, index := range indices {
		g.removeNode(index)
	}
	g.pruneUnreachable()
}

// RemoveBeyondDepth removes every node more than maxDepth hops from the
// root, measured by BFS, except the std node.
func (g *Graph) RemoveBeyondDepth(maxDepth int) {
	visited := make([]bool, len(g.nodes))
	visited[g.root] = true

	type item struct{ node, depth int }
	queue := []item{{g.root, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if it.depth >= maxDepth {
			continue
		}
		for _, next := range g.out[it.node] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, item{next, it.depth + 1})
			}
		}
	}

	g.removeUnvisited(visited)
}

// pruneUnreachable removes every node, std excepted, that DFS from the
// root cannot reach. It runs after each structural edit because removing
// a node also removes its incident edges and can strand descendants.
func (g *Graph) pruneUnreachable() {
	visited := make([]bool, len(g.nodes))
	for _, index := range g.DFS() {
		visited[index] = true
	}
	g.removeUnvisited(visited)
}

func (g *Graph) removeUnvisited(visited []bool) {
	for i, n := range g.nodes {
		if n != nil && !visited[i] && i != g.std {
			g.removeNode(i)
		}
	}
}

func (g *Graph) removeNode(index int) {
	if !g.Contains(index) || index == g.std {
		return
	}
	for _, to := range g.out[index] {
		g.in[to] = deleteValue(g.in[to], index)
		delete(g.edges, edgeKey{index, to})
	}
	for _, from := range g.in[index] {
		g.out[from] = deleteValue(g.out[from], index)
		delete(g.edges, edgeKey{from, index})
	}
	g.nodes[index] = nil
	g.out[index] = nil
	g.in[index] = nil
}

func deleteValue(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
